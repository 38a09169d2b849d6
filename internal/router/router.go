package router

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/pawsconnect/backend/internal/chat"
	"github.com/pawsconnect/backend/internal/engine"
	"github.com/pawsconnect/backend/internal/feed"
	"github.com/pawsconnect/backend/internal/handlers"
	"github.com/pawsconnect/backend/internal/media"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
	"github.com/pawsconnect/backend/internal/store"
	"github.com/pawsconnect/backend/pkg/firebase"
)

const feedCacheTTL = 30 * time.Second

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, redisClient *redis.Client, fb *firebase.App, shelterEmails []string, storageBucketName string) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Account{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize stores and repositories ---
	documents := store.NewMongoStore(mgClient.Database("pawsconnect"))
	postRepo := repositories.NewStorePostRepository(documents)
	commentRepo := repositories.NewStoreCommentRepository(documents)
	profileRepo := repositories.NewStoreProfileRepository(documents)
	accountRepo := repositories.NewPostgresAccountRepository(pgdb)

	// --- Services ---
	mediaStorage := media.NewGCSStorage(fb.Bucket, storageBucketName)
	eng := engine.New(postRepo, commentRepo, profileRepo, accountRepo, mediaStorage, fb.AuthClient)
	feedService := feed.NewService(postRepo, profileRepo, redisClient, feedCacheTTL)
	chatService := chat.NewService(chat.NewFirebaseChannel(fb.DBClient))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(fb.AuthClient, accountRepo, profileRepo, shelterEmails)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require Firebase authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(fb.AuthClient, accountRepo))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(profileRepo, accountRepo, eng)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, eng, feedService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(eng, feedService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Bookmark routes
	bookmarkHandler := handlers.NewBookmarkHandler(eng, profileRepo, feedService)
	bookmarkHandler.RegisterBookmarkRoutes(api)
	log.Println("Bookmark routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(eng)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Rating routes
	ratingHandler := handlers.NewRatingHandler(eng, profileRepo)
	ratingHandler.RegisterRatingRoutes(api)
	log.Println("Rating routes configured.")

	// Chat routes
	chatHandler := handlers.NewChatHandler(chatService)
	chatHandler.RegisterChatRoutes(api)
	log.Println("Chat routes configured.")

	// Media routes
	mediaHandler := handlers.NewMediaHandler(mediaStorage, profileRepo)
	mediaHandler.RegisterMediaRoutes(api)
	log.Println("Media routes configured.")

	log.Println("All routes configured.")
}
