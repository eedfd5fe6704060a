package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/CareLedger/controllers"
	"github.com/CareLedger/initializers"
	"github.com/CareLedger/middlewares"
	"github.com/CareLedger/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitPushNotificationService()
	services.InitEmailService()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// user routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)

		// resident routes open to any role
		auth.GET("/residents/lookup", controllers.LookupResidents)
		auth.GET("/residents/:resident_id/timeline", controllers.GetResidentTimeline)

		// daily log routes
		auth.GET("/daily-logs", controllers.GetDailyLogs)
		auth.POST("/daily-logs", controllers.CreateDailyLog)
		auth.GET("/daily-logs/:daily_log_id", controllers.GetDailyLog)
		auth.PATCH("/daily-logs/:daily_log_id", controllers.UpdateDailyLog)
		auth.DELETE("/daily-logs/:daily_log_id", controllers.DeleteDailyLog)

		// incident routes
		auth.GET("/incidents", controllers.GetIncidents)
		auth.POST("/incidents", controllers.CreateIncident)
		auth.GET("/incidents/:incident_id", controllers.GetIncident)
		auth.PATCH("/incidents/:incident_id", controllers.UpdateIncident)
		auth.DELETE("/incidents/:incident_id", controllers.DeleteIncident)

		// medication routes
		auth.GET("/medications", controllers.GetMedications)
		auth.POST("/medications", controllers.CreateMedication)
		auth.GET("/medications/:medication_id", controllers.GetMedication)
		auth.PATCH("/medications/:medication_id", controllers.UpdateMedication)

		// medication administration routes
		auth.GET("/mar", controllers.GetMARs)
		auth.POST("/mar", controllers.CreateMAR)
		auth.GET("/mar/:mar_id", controllers.GetMAR)
		auth.PATCH("/mar/:mar_id", controllers.UpdateMAR)
		auth.DELETE("/mar/:mar_id", controllers.DeleteMAR)

		// shift routes
		auth.GET("/shifts", controllers.GetShifts)
		auth.POST("/shifts", controllers.CreateShift)
		auth.GET("/shifts/:shift_id", controllers.GetShift)
		auth.PATCH("/shifts/:shift_id", controllers.UpdateShift)

		// manager only routes
		manager := auth.Group("/")
		manager.Use(middlewares.CheckManager)
		manager.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			manager.POST("/users", controllers.UserSignup)

			manager.GET("/residents", controllers.GetResidents)
			manager.POST("/residents", controllers.CreateResident)
			manager.GET("/residents/:resident_id", controllers.GetResident)
			manager.PATCH("/residents/:resident_id", controllers.UpdateResident)

			manager.GET("/care-plans", controllers.GetCarePlans)
			manager.POST("/care-plans", controllers.CreateCarePlan)
			manager.GET("/care-plans/:care_plan_id", controllers.GetCarePlan)
			manager.PATCH("/care-plans/:care_plan_id", controllers.UpdateCarePlan)

			// audit trail routes
			manager.GET("/incidents/:incident_id/history", controllers.GetIncidentHistory)
			manager.GET("/incidents/:incident_id/history-summary", controllers.GetIncidentHistorySummary)
			manager.GET("/mar/:mar_id/history", controllers.GetMARHistory)
			manager.GET("/mar/:mar_id/history-summary", controllers.GetMARHistorySummary)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
