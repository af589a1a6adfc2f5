package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/planweave/planweave-backend/internal/handlers"
)

func wireRouter(cfg Config, handlerset Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("planweave"))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/members", handlerset.Member.CreateMember)
		v1.GET("/members/:id", handlerset.Member.GetMember)
		v1.POST("/members/:id/plans", handlerset.Plan.GeneratePlan)
		v1.GET("/members/:id/plans", handlerset.Plan.ListMemberPlans)
		v1.GET("/plans/:planID", handlerset.Plan.GetPlan)
	}

	return router
}
