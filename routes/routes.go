package routes

import (
	"github.com/frans1979valk/vastelijn-portal/controllers"
	"github.com/frans1979valk/vastelijn-portal/middlewares"
	"github.com/frans1979valk/vastelijn-portal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires all route groups. The store and headwind client are
// constructed once in main and shared by the controllers that need them.
func SetupRouter(store *services.ProvisioningStore, headwind *services.HeadwindClient) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	public := controllers.NewPublicController(store)
	admin := controllers.NewAdminController(store)
	devices := controllers.NewDeviceController(headwind)
	mdm := controllers.NewMDMController(headwind)

	r.GET("/api/health", controllers.Health)

	// Public provisioning surface for enrolling devices
	pub := r.Group("/api/public")
	{
		pub.GET("/provisioning", public.Provisioning)
		pub.GET("/apk", public.DownloadAPK)
	}

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	me := r.Group("/api")
	me.Use(middlewares.AuthMiddleware())
	{
		me.GET("/me", controllers.Me)

		me.GET("/devices", devices.List)
		me.POST("/devices", devices.Create)
		me.GET("/devices/:id", devices.Get)
	}

	adm := r.Group("/api/admin")
	adm.Use(middlewares.AuthMiddleware())
	{
		adm.GET("/config", admin.GetConfig)
		adm.PUT("/config", admin.UpdateConfig)
		adm.POST("/upload-apk", admin.UploadAPK)
		adm.DELETE("/apk", admin.DeleteAPK)
		adm.GET("/stats", admin.Stats)

		adm.GET("/mdm/configurations", mdm.ListConfigurations)
		adm.GET("/mdm/qr/:config_key", mdm.GetQRPayload)
	}

	return r
}
