package controllers

import (
	"errors"
	"net/http"

	"github.com/frans1979valk/vastelijn-portal/services"

	"github.com/gin-gonic/gin"
)

// MDMController exposes the Headwind policy catalog to the admin UI.
type MDMController struct {
	Headwind *services.HeadwindClient
}

func NewMDMController(client *services.HeadwindClient) *MDMController {
	return &MDMController{Headwind: client}
}

func (mc *MDMController) ListConfigurations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configurations": mc.Headwind.ListConfigurations()})
}

// GetQRPayload returns the full enrollment payload for one configuration.
func (mc *MDMController) GetQRPayload(c *gin.Context) {
	payload, err := mc.Headwind.GetQRPayload(c.Param("config_key"))
	if err != nil {
		if errors.Is(err, services.ErrUnknownConfiguration) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Onbekende configuratie: " + c.Param("config_key")})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}
