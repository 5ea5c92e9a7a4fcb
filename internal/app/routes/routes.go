package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ardaseremet/clubhub/internal/app/controllers"
	"github.com/ardaseremet/clubhub/internal/middleware"
	"github.com/ardaseremet/clubhub/internal/pkg/realtime"
)

// Controllers bundles everything the router mounts
type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Club     *controllers.ClubController
	Chat     *controllers.ChatController
	Post     *controllers.PostController
	Story    *controllers.StoryController
	Showcase *controllers.ShowcaseController
	Realtime *realtime.Handler
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	auth.Use(rateLimiter.Limit("auth", 20, time.Minute))
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", ctrl.User.GetMe)
			users.PUT("/me", ctrl.User.UpdateMe)
			users.GET("/:id", ctrl.User.GetUser)
		}

		clubs := authenticated.Group("/clubs")
		{
			clubs.POST("", ctrl.Club.CreateClub)
			clubs.GET("", ctrl.Club.GetClubs)
			clubs.GET("/:id", ctrl.Club.GetClub)
			clubs.PUT("/:id", ctrl.Club.UpdateClub)
			clubs.GET("/:id/members", ctrl.Club.GetClubMembers)
			clubs.POST("/:id/members", ctrl.Club.JoinClub)
			clubs.DELETE("/:id/members", ctrl.Club.LeaveClub)
			clubs.PUT("/:id/admins/:userId", ctrl.Club.GrantAdmin)
			clubs.DELETE("/:id/admins/:userId", ctrl.Club.RevokeAdmin)

			clubs.POST("/:id/posts", ctrl.Post.CreatePost)
			clubs.GET("/:id/posts", ctrl.Post.GetClubPosts)
			clubs.POST("/:id/stories", ctrl.Story.CreateStory)
		}

		chats := authenticated.Group("/chats")
		{
			chats.POST("/direct", ctrl.Chat.OpenDirectChat)
			chats.POST("/group", ctrl.Chat.CreateGroupChat)
			chats.GET("", ctrl.Chat.GetChats)
			chats.GET("/:chatId/messages", ctrl.Chat.GetMessages)
			chats.POST("/:chatId/messages",
				rateLimiter.Limit("send", 60, time.Minute), ctrl.Chat.SendMessage)
			chats.POST("/:chatId/read", ctrl.Chat.MarkRead)
			chats.POST("/:chatId/join", ctrl.Chat.JoinGroupChat)
			chats.DELETE("/:chatId", ctrl.Chat.DeleteGroupChat)
			chats.DELETE("/:chatId/messages", ctrl.Chat.ClearHistory)
			chats.GET("/:chatId/ws", ctrl.Realtime.SubscribeChat)
		}

		me := authenticated.Group("/me")
		{
			me.DELETE("/chats/:chatId", ctrl.Chat.RemoveFromList)
			me.GET("/chats/ws", ctrl.Realtime.SubscribeChatList)
		}

		posts := authenticated.Group("/posts")
		{
			posts.GET("/:id", ctrl.Post.GetPost)
			posts.DELETE("/:id", ctrl.Post.DeletePost)
			posts.POST("/:id/views", ctrl.Post.AddView)
			posts.POST("/:id/likes", ctrl.Post.LikePost)
			posts.DELETE("/:id/likes", ctrl.Post.UnlikePost)
		}

		authenticated.GET("/stories", ctrl.Story.GetStories)
		authenticated.GET("/showcase", ctrl.Showcase.GetShowcase)
	}
}
