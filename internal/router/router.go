package router

import (
	"burrow/internal/handlers"
	"burrow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	storyHandler := handlers.NewStoryHandler()
	voteHandler := handlers.NewVoteHandler()
	userHandler := handlers.NewUserHandler()
	notificationHandler := handlers.NewNotificationHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/boards", storyHandler.ListBoards)
	api.GET("/boards/:name/posts", storyHandler.ListByBoard)
	api.GET("/posts/:pid", storyHandler.Detail)
	api.GET("/users/:id", userHandler.Profile)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", storyHandler.Create)
		authorized.POST("/posts/:pid/comments", storyHandler.CreateComment)
		authorized.POST("/vote/:type/:id", voteHandler.Cast)

		authorized.GET("/me/karma", userHandler.KarmaLogs)
		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/votes/:id/retract", adminHandler.RetractVote)
		admin.POST("/users/:id/recompute-karma", adminHandler.RecomputeKarma)
		admin.POST("/recount/:type/:id", adminHandler.RecomputeCounters)
	}
}
