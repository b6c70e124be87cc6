package main

import (
	"log"

	"github.com/frans1979valk/vastelijn-portal/config"
	"github.com/frans1979valk/vastelijn-portal/routes"
	"github.com/frans1979valk/vastelijn-portal/services"
)

func main() {
	config.Init()

	store := services.NewProvisioningStore(config.ConfigFilePath())
	headwind := services.NewHeadwindClient(
		config.HeadwindBaseURL(),
		config.HeadwindAdminUser(),
		config.HeadwindAdminPass(),
	)

	r := routes.SetupRouter(store, headwind)
	if err := r.Run(":" + config.Port()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
