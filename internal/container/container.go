package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"github.com/tripmitra/api/internal/chain"
	"github.com/tripmitra/api/internal/config"
	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	QueryService       *services.QueryService
	SearchService      *services.SearchService
	AnalyticsService   *services.AnalyticsService
	DestinationService *services.DestinationService
	FacilityService    *services.FacilityService
	MapService         *services.MapService
	ProofService       *services.ProofService
	UserService        *services.UserService
	WebhookService     *services.WebhookService
	AIService          *services.AIService
	TripService        *services.TripService
	ChatService        *services.ChatService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) (*Container, error) {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	mongo := models.MongodbNewRepo(mongoDBClient)

	engine, err := inference.NewClient(inference.Config{APIKey: cfg.HuggingFaceAPIKey})
	if err != nil {
		return nil, err
	}
	completer, err := inference.NewOpenAIClient(inference.OpenAIConfig{APIKey: cfg.OpenAIAPIKey})
	if err != nil {
		return nil, err
	}
	verifier := chain.NewRPCVerifier(cfg.ChainRPCURL)

	return &Container{
		Logger:         logger,
		Cloudinary:     cld,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,

		QueryService:       services.NewQueryService(mongo, mongo, mongo, engine),
		SearchService:      services.NewSearchService(mongo, mongo, engine),
		AnalyticsService:   services.NewAnalyticsService(mongo, mongo, mongo, mongo),
		DestinationService: services.NewDestinationService(mongo, engine, cld),
		FacilityService:    services.NewFacilityService(mongo, engine),
		MapService:         services.NewMapService(mongo, mongo),
		ProofService:       services.NewProofService(mongo, mongo, verifier),
		UserService:        services.NewUserService(mongo, mongo, supa),
		WebhookService:     services.NewWebhookService(mongo, mongo, mongo),
		AIService:          services.NewAIService(engine),
		TripService:        services.NewTripService(supa),
		ChatService:        services.NewChatService(supa, completer),
	}, nil
}
