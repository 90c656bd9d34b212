package routes

import (
	"jobtrack-backend/config"
	"jobtrack-backend/controllers"
	"jobtrack-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:19006"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Service record routes
		records := api.Group("/services")
		{
			records.POST("", controllers.CreateServiceRecord)
			records.GET("", controllers.GetServiceRecords)
			records.GET("/:id", controllers.GetServiceRecord)
			records.PUT("/:id", controllers.UpdateServiceRecord)
			records.DELETE("/:id", controllers.DeleteServiceRecord)
		}

		// Calendar markers
		api.GET("/calendar", controllers.GetCalendar)

		// Financial report
		api.GET("/reports/financial", controllers.GetFinancialReport)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
