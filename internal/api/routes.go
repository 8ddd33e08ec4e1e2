package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Assets locates the landing page and its static files. Empty fields disable them.
type Assets struct {
	ViewsDir  string
	PublicDir string
}

func SetupRoutes(
	router *gin.Engine,
	assets Assets,
	userService service.UserService,
	exerciseService service.ExerciseService,
	exportService service.ExportService,
) {
	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService, exportService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if assets.PublicDir != "" {
		router.Static("/public", assets.PublicDir)
	}
	if assets.ViewsDir != "" {
		index := filepath.Join(assets.ViewsDir, "index.html")
		router.GET("/", func(c *gin.Context) {
			c.File(index)
		})
	}

	apiGroup := router.Group("/api")
	{
		usersGroup := apiGroup.Group("/users")
		{
			usersGroup.POST("", userHandler.CreateUser)
			usersGroup.GET("", userHandler.ListUsers)

			usersGroup.POST("/:_id/exercises", exerciseHandler.AddExercise)
			usersGroup.GET("/:_id/logs", exerciseHandler.GetLog)
			usersGroup.POST("/:_id/logs/export", exerciseHandler.ExportLog)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "Not found")
	})
}
