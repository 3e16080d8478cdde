package routes

import (
	"log/slog"
	"net/http"

	"aisolutions-backend/config"
	"aisolutions-backend/controllers"
	"aisolutions-backend/services"
	"aisolutions-backend/store"
	"aisolutions-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps is everything the router hands to its controllers.
type Deps struct {
	Config   config.Config
	Store    *store.CSVStore
	Ingest   *services.IngestService
	DB       *gorm.DB
	Gatherer prometheus.Gatherer
	Log      *slog.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(d.Log))

	health := &controllers.HealthController{Store: d.Store, DB: d.DB}
	r.GET("/health", health.Health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	authController := &controllers.AuthController{
		Users:  d.Config.AuthUsers,
		Secret: d.Config.JWTSecret,
		Expiry: d.Config.JWTExpiry,
		Secure: d.Config.SecureCookies,
	}
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)

		auth.Use(utils.AuthMiddleware(d.Config.JWTSecret))
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(d.Config.JWTSecret))
	{
		dashboard := &controllers.DashboardController{Store: d.Store, Log: d.Log}
		dash := api.Group("/dashboard")
		{
			dash.GET("/sales", dashboard.Sales)
			dash.GET("/effectiveness", dashboard.Effectiveness)
			dash.GET("/analysis", dashboard.Analysis)
		}

		records := &controllers.RecordsController{Store: d.Store, Ingest: d.Ingest, Log: d.Log}
		api.GET("/records", records.List)
		api.POST("/records/generate", records.Generate)
		api.GET("/export", records.Export)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	})

	return r
}
