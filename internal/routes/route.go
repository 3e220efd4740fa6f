package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/container"
	"github.com/tripmitra/api/internal/handlers"
	"github.com/tripmitra/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "tripmitra-api",
			})
		})

		// auth routes
		v1.POST("/signup", handlers.SignUp(container.UserService))
		v1.POST("/login", handlers.SignIn(container.UserService))
		v1.POST("/refresh", handlers.RefreshToken(container.UserService))

		// query routing and search
		v1.POST("/process", handlers.ProcessQuery(container.QueryService))
		v1.POST("/search", handlers.Search(container.SearchService))
		v1.GET("/history", handlers.GetHistory(container.QueryService))
		v1.GET("/analytics", handlers.GetAnalytics(container.AnalyticsService))

		destinationRoutes := v1.Group("/destinations")
		{
			destinationRoutes.GET("/", handlers.ListDestinations(container.DestinationService))
			destinationRoutes.POST("/", handlers.CreateDestination(container.DestinationService))
			destinationRoutes.GET("/:id", handlers.GetDestination(container.DestinationService))
		}

		facilityRoutes := v1.Group("/facilities")
		{
			facilityRoutes.GET("/", handlers.ListFacilities(container.FacilityService))
			facilityRoutes.POST("/", handlers.CreateFacility(container.FacilityService))
		}

		reviewRoutes := v1.Group("/reviews")
		{
			reviewRoutes.GET("/", handlers.ListReviews(container.FacilityService))
			reviewRoutes.POST("/", handlers.CreateReview(container.FacilityService))
		}

		v1.GET("/preferences", handlers.GetPreferences(container.UserService))
		v1.POST("/preferences", handlers.UpdatePreferences(container.UserService))

		v1.GET("/map", handlers.GetMap(container.MapService))

		blockchainRoutes := v1.Group("/blockchain")
		{
			blockchainRoutes.POST("/", handlers.BlockchainOperation(container.ProofService))
			blockchainRoutes.GET("/", handlers.ListProofs(container.ProofService))
		}
		v1.GET("/verify/:hash", handlers.VerifyProof(container.ProofService))

		walletRoutes := v1.Group("/wallet")
		{
			walletRoutes.POST("/", handlers.WalletOperation(container.UserService))
			walletRoutes.GET("/", handlers.GetWalletInfo(container.UserService))
		}

		aiRoutes := v1.Group("/ai")
		{
			aiRoutes.GET("/models", handlers.GetModels(container.AIService))
			aiRoutes.POST("/generate", handlers.Generate(container.AIService))
		}

		v1.POST("/webhook/model-callback", handlers.ModelCallback(container.WebhookService))
	}

	// Trip tracking and the travel assistant require a Supabase session
	// because their rows live behind row level security.
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Logger))

	tripRoutes := protected.Group("/trips")
	{
		tripRoutes.POST("/", handlers.CreateTrip(container.TripService))
		tripRoutes.GET("/", handlers.ListTrips(container.TripService))
		tripRoutes.DELETE("/:id", handlers.DeleteTrip(container.TripService))
		tripRoutes.POST("/:id/locations", handlers.LogTripLocation(container.TripService))
		tripRoutes.GET("/:id/locations", handlers.ListTripLocations(container.TripService))
	}

	chatRoutes := protected.Group("/chat")
	{
		chatRoutes.POST("/", handlers.SendChat(container.ChatService))
		chatRoutes.GET("/", handlers.GetChatHistory(container.ChatService))
	}

	return r
}
