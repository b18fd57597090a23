package routes

import (
	"ggreviews/handlers"
	"ggreviews/middleware"
	"ggreviews/monitoring"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup builds the router with the full middleware chain and route table.
func Setup() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// Uploaded images are served from both mounts the clients use
	r.Static("/uploads", handlers.UploadDir())
	r.Static("/api/uploads", handlers.UploadDir())

	r.GET("/metrics", monitoring.PrometheusHandler())

	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to GGReviews 🎮")
	})

	// Users
	api.POST("/users/signup", handlers.Signup)
	api.POST("/users/login", handlers.Login)

	// Games; :id doubles as the game id for the nested review routes
	api.GET("/games", handlers.GetGames)
	api.GET("/games/:id", handlers.GetGameByID)
	api.POST("/games", handlers.AuthMiddleware(), handlers.AdminOnly(), handlers.CreateGame)
	api.PUT("/games/:id", handlers.AuthMiddleware(), handlers.AdminOnly(), handlers.UpdateGame)
	api.DELETE("/games/:id", handlers.AuthMiddleware(), handlers.AdminOnly(), handlers.DeleteGame)
	api.POST("/games/:id/like", handlers.AuthMiddleware(), handlers.ToggleLike)

	// Reviews
	api.GET("/games/:id/reviews", handlers.GetReviewsByGame)
	api.POST("/games/:id/reviews", handlers.AuthMiddleware(), handlers.CreateReview)
	api.GET("/reviews/:id", handlers.GetReviewByID)
	api.PUT("/reviews/:id", handlers.AuthMiddleware(), handlers.UpdateReview)
	api.DELETE("/reviews/:id", handlers.AuthMiddleware(), handlers.DeleteReview)

	// Comments; :id is the review id on the two collection routes
	api.GET("/comments/single/:id", handlers.AuthMiddleware(), handlers.GetCommentByID)
	api.GET("/comments/:id", handlers.GetCommentsByReview)
	api.POST("/comments/:id", handlers.AuthMiddleware(), handlers.AddComment)
	api.PUT("/comments/:id", handlers.AuthMiddleware(), handlers.UpdateComment)
	api.DELETE("/comments/:id", handlers.AuthMiddleware(), handlers.DeleteComment)

	// Genres
	api.GET("/genres", handlers.GetGenres)
	api.POST("/genres", handlers.AuthMiddleware(), handlers.AdminOnly(), handlers.CreateGenre)
	api.DELETE("/genres/:id", handlers.AuthMiddleware(), handlers.AdminOnly(), handlers.DeleteGenre)

	// Feedbacks
	api.GET("/feedbacks", handlers.GetFeedbacks)
	api.POST("/feedbacks", handlers.AuthMiddleware(), handlers.CreateFeedback)
	api.DELETE("/feedbacks/:id", handlers.AuthMiddleware(), handlers.DeleteFeedback)

	// Admin dashboard
	api.GET("/stats", handlers.AuthMiddleware(), handlers.AdminOnly(), handlers.GetDashboardStats)

	return r
}
