package router

import (
	"fmt"
	"strings"

	"github.com/fuelflow/internal/cache"
	"github.com/fuelflow/internal/config"
	adminhandlers "github.com/fuelflow/internal/http/handlers/admin"
	officehandlers "github.com/fuelflow/internal/http/handlers/office"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP surface. Every authenticated route passes the
// department RBAC check, so the route patterns here must line up with the
// seeded policy objects.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	officeHandler := officehandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ff"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), officeHandler.Login)
			auth.GET("/captcha", officeHandler.GetImageCaptcha)
		}

		authed := apiV1.Group("")
		authed.Use(JWTAuthMiddleware(c.AuthService, c.UserRepo), DepartmentRBACMiddleware(c.AuthzService))
		{
			authed.GET("/profile", officeHandler.Profile)
			authed.POST("/auth/password", officeHandler.ChangePassword)

			authed.POST("/orders", officeHandler.CreateOrder)
			authed.GET("/orders", officeHandler.ListOrders)
			authed.GET("/orders/:id", officeHandler.GetOrder)
			authed.POST("/orders/:id/actions", officeHandler.ExecuteAction)
			authed.POST("/orders/:id/proforma", officeHandler.RecordProforma)
			authed.POST("/orders/:id/invoice", officeHandler.RecordInvoice)
			authed.GET("/orders/:id/notes", officeHandler.ListNotes)
			authed.POST("/orders/:id/notes", officeHandler.AddNote)
			authed.GET("/orders/:id/documents", officeHandler.ListDocuments)
			authed.POST("/orders/:id/documents", officeHandler.UploadDocument)
			authed.GET("/orders/:id/documents/:doc_id/download", officeHandler.DownloadDocument)
			authed.DELETE("/orders/:id/documents/:doc_id", officeHandler.DeleteDocument)

			authed.GET("/analytics/report", officeHandler.AnalyticsReport)
			authed.GET("/analytics/export", officeHandler.ExportOrdersCSV)

			authed.GET("/prices", officeHandler.ListPrices)
			authed.GET("/prices/history", officeHandler.PriceHistory)

			authed.GET("/clients", officeHandler.ListClients)
			authed.GET("/drivers", officeHandler.ListDrivers)
			authed.GET("/trucks", officeHandler.ListTrucks)
			authed.GET("/transport-companies", officeHandler.ListTransportCompanies)
		}

		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(c.AuthService, c.UserRepo), DepartmentRBACMiddleware(c.AuthzService))
		{
			admin.GET("/clients", adminHandler.ListClientsAdmin)
			admin.POST("/clients", adminHandler.CreateClient)
			admin.PUT("/clients/:id", adminHandler.UpdateClient)
			admin.PATCH("/clients/:id/status", adminHandler.SetClientActive)

			admin.GET("/drivers", adminHandler.ListDriversAdmin)
			admin.POST("/drivers", adminHandler.CreateDriver)
			admin.PUT("/drivers/:id", adminHandler.UpdateDriver)
			admin.PATCH("/drivers/:id/status", adminHandler.SetDriverActive)

			admin.GET("/trucks", adminHandler.ListTrucksAdmin)
			admin.POST("/trucks", adminHandler.CreateTruck)
			admin.PUT("/trucks/:id", adminHandler.UpdateTruck)
			admin.PATCH("/trucks/:id/status", adminHandler.SetTruckActive)

			admin.GET("/transport-companies", adminHandler.ListTransportCompaniesAdmin)
			admin.POST("/transport-companies", adminHandler.CreateTransportCompany)
			admin.PUT("/transport-companies/:id", adminHandler.UpdateTransportCompany)
			admin.PATCH("/transport-companies/:id/status", adminHandler.SetTransportCompanyActive)

			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/batch-status", adminHandler.SetUserStatus)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)

			admin.PUT("/prices", adminHandler.UpdatePrice)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
