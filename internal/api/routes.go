package api

import (
	"net/http"

	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all HTTP routes on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	templateService service.TemplateService,
	logService service.LogService,
	recordService service.RecordService,
	goalService service.GoalService,
	photoService service.PhotoService,
	settingsService service.SettingsService,
	scheduleService service.ScheduleService,
) {
	authHandler := NewAuthHandler(authService)
	templateHandler := NewTemplateHandler(templateService)
	logHandler := NewLogHandler(logService)
	recordHandler := NewRecordHandler(recordService)
	goalHandler := NewGoalHandler(goalService)
	photoHandler := NewPhotoHandler(photoService)
	settingsHandler := NewSettingsHandler(settingsService)
	scheduleHandler := NewScheduleHandler(scheduleService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.GetTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
			templateGroup.PUT("/:id", templateHandler.UpdateTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		logGroup := protected.Group("/logs")
		{
			logGroup.POST("", logHandler.CreateLog)
			logGroup.GET("", logHandler.GetLogs)
			logGroup.GET("/:id", logHandler.GetLog)
			logGroup.PUT("/:id", logHandler.UpdateLog)
			logGroup.DELETE("/:id", logHandler.DeleteLog)
		}

		recordGroup := protected.Group("/records")
		{
			recordGroup.POST("", recordHandler.CreateRecord)
			recordGroup.GET("", recordHandler.GetRecords)
			recordGroup.GET("/top", recordHandler.GetTopRecords)
			recordGroup.PUT("/:id", recordHandler.UpdateRecord)
			recordGroup.DELETE("/:id", recordHandler.DeleteRecord)
		}

		goalGroup := protected.Group("/goals")
		{
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("", goalHandler.GetGoals)
			goalGroup.PUT("/:id", goalHandler.UpdateGoal)
			goalGroup.PUT("/:id/achieved", goalHandler.SetAchieved)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)
		}

		photoGroup := protected.Group("/photos")
		{
			photoGroup.POST("/upload-url", photoHandler.GetUploadURL)
			photoGroup.POST("", photoHandler.AddPhoto)
			photoGroup.GET("", photoHandler.GetPhotos)
			photoGroup.PUT("/:id", photoHandler.UpdatePhoto)
			photoGroup.DELETE("/:id", photoHandler.DeletePhoto)
		}

		settingsGroup := protected.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.GetSettings)
			settingsGroup.PUT("/unit", settingsHandler.UpdateUnit)
			settingsGroup.PUT("/colors", settingsHandler.UpdateColors)
		}

		scheduleGroup := protected.Group("/schedules")
		{
			scheduleGroup.POST("", scheduleHandler.CreateSchedule)
			scheduleGroup.GET("", scheduleHandler.GetSchedules)
			scheduleGroup.GET("/active", scheduleHandler.GetActiveSchedule)
			scheduleGroup.GET("/resolve", scheduleHandler.ResolveDay)
			scheduleGroup.GET("/upcoming", scheduleHandler.UpcomingWorkouts)
			scheduleGroup.PATCH("/:id", scheduleHandler.UpdateSchedule)
			scheduleGroup.DELETE("/:id", scheduleHandler.DeleteSchedule)
		}
	}
}
