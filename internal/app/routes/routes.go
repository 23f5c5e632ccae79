package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/alumnihub/internal/app/controllers"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/middleware"
	"github.com/emre/alumnihub/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	chatController *controllers.ChatController,
	mentorshipController *controllers.MentorshipController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Message:   "ok",
			Timestamp: time.Now(),
		})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Optional-auth reads ---
	// These endpoints work anonymously but show more to authenticated callers.
	optional := v1.Group("")
	optional.Use(authMiddleware.OptionalJWTAuth())
	{
		optional.GET("/users", userController.GetUsers)
		optional.GET("/users/:id", userController.GetUser)
		optional.GET("/events", eventController.GetEvents)
		optional.GET("/events/:id", eventController.GetEvent)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		users := authenticated.Group("/users")
		{
			users.GET("/mentors", userController.GetMentors)
			users.PUT("/me", userController.UpdateProfile)
			users.DELETE("/me", userController.DeactivateAccount)
			users.PUT("/me/preferences", userController.UpdatePreferences)
			users.PUT("/me/mentorship-profile", userController.UpdateMentorshipProfile)
		}

		events := authenticated.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.GET("/my-registrations", eventController.GetMyRegistrations)
			events.POST("/:id/publish", eventController.PublishEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/register", eventController.Register)
			events.DELETE("/:id/register", eventController.Unregister)
			events.POST("/:id/attendees/:userId/attendance", eventController.MarkAttendance)
			events.POST("/:id/comments", eventController.AddComment)
		}

		chat := authenticated.Group("/chat")
		{
			chat.GET("/messages", chatController.GetMessages)
			chat.POST("/messages", chatController.SendMessage)
			chat.PUT("/messages/:id", chatController.EditMessage)
			chat.DELETE("/messages/:id", chatController.DeleteMessage)
			chat.POST("/messages/:id/reactions", chatController.AddReaction)
			chat.DELETE("/messages/:id/reactions", chatController.RemoveReaction)
		}

		mentorship := authenticated.Group("/mentorship/requests")
		{
			mentorship.POST("", mentorshipController.CreateRequest)
			mentorship.GET("", mentorshipController.GetRequests)
			mentorship.GET("/:id", mentorshipController.GetRequest)
			mentorship.POST("/:id/accept", mentorshipController.Accept)
			mentorship.POST("/:id/decline", mentorshipController.Decline)
			mentorship.POST("/:id/cancel", mentorshipController.Cancel)
			mentorship.POST("/:id/complete", mentorshipController.Complete)
			mentorship.POST("/:id/meetings", mentorshipController.ScheduleMeeting)
			mentorship.POST("/:id/feedback", mentorshipController.SubmitFeedback)
		}

		// Real-time updates
		authenticated.GET("/ws", wsHandler.HandleConnection)
	}
}
