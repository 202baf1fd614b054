package routes

import (
	"github.com/baomythoi/leefit/internal/config"
	"github.com/baomythoi/leefit/internal/handlers"
	"github.com/baomythoi/leefit/internal/metrics"
	"github.com/baomythoi/leefit/internal/middleware"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, m *metrics.Metrics) error {
	app.Use(middleware.Metrics(m))
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	userRepo := repository.NewUserRepository(db)
	userProfileRepo := repository.NewUserProfileRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	sessionRepo := repository.NewTrainingSessionRepository(db)
	nutritionRepo := repository.NewNutritionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	storageService := newStorageService(cfg)

	matchmakingService := services.NewMatchmakingService(trainerRepo)
	profileService := services.NewProfileService(userProfileRepo, storageService)
	scheduleService := services.NewScheduleService(db, sessionRepo, trainerRepo)
	nutritionService := services.NewNutritionService(nutritionRepo)
	progressService := services.NewProgressService(progressRepo, storageService)
	surveyService := services.NewSurveyService(db, surveyRepo, matchmakingService, m)
	paymentService := services.NewPaymentService(paymentRepo, sessionRepo, trainerRepo)

	authHandler := handlers.NewAuthHandler(db, userRepo, userProfileRepo, cfg.JWTSecret)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	profileHandler := handlers.NewProfileHandler(profileService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	nutritionHandler := handlers.NewNutritionHandler(nutritionService)
	progressHandler := handlers.NewProgressHandler(progressService)
	trainerHandler := handlers.NewTrainerHandler(trainerRepo, userProfileRepo, matchmakingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	api.Post("/survey", middleware.OptionalAuth(cfg.JWTSecret), surveyHandler.Submit)
	api.Get("/survey/latest", middleware.AuthRequired(cfg.JWTSecret), surveyHandler.Latest)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := authProtected.Group("/users")
	users.Get("/profile", profileHandler.GetUserProfile)
	users.Put("/profile", profileHandler.UpdateUserProfile)
	users.Post("/profile/avatar", profileHandler.UploadAvatar)

	sessions := authProtected.Group("/training_sessions")
	sessions.Get("", scheduleHandler.ListSessions)
	sessions.Post("", scheduleHandler.CreateSession)
	sessions.Get("/:id", scheduleHandler.GetSession)
	sessions.Put("/:id", scheduleHandler.UpdateSession)
	sessions.Delete("/:id", scheduleHandler.DeleteSession)

	authProtected.Get("/meals", nutritionHandler.ListMeals)
	authProtected.Post("/meals", nutritionHandler.CreateMeal)
	authProtected.Get("/menus", nutritionHandler.GetMenu)
	authProtected.Post("/menus", nutritionHandler.SaveMenu)
	authProtected.Post("/menu_meals", nutritionHandler.AddMenuMeal)

	progress := authProtected.Group("/user_progress")
	progress.Get("", progressHandler.ListEntries)
	progress.Post("", progressHandler.RecordEntry)
	progress.Get("/chart", progressHandler.Chart)
	progress.Post("/photo", progressHandler.UploadPhoto)
	progress.Get("/:id/photo", progressHandler.PhotoURL)

	authProtected.Get("/payments", paymentHandler.ListPayments)
	authProtected.Post("/payments", paymentHandler.RecordPayment)

	trainers := authProtected.Group("/trainers")
	trainers.Get("", trainerHandler.ListTrainers)
	trainers.Get("/recommended", trainerHandler.GetRecommendedTrainers)
	trainers.Get("/:id", trainerHandler.GetTrainerDetail)

	return registerDocsRoutes(app, cfg)
}

// newStorageService prefers S3 over Supabase and returns nil when neither
// is configured; upload endpoints then answer 503.
func newStorageService(cfg *config.Config) services.StorageService {
	switch {
	case cfg.S3Enabled():
		log.Info().Str("bucket", cfg.S3Bucket).Str("region", cfg.S3Region).Msg("Using S3 storage")
		return services.NewS3StorageService(services.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	case cfg.SupabaseEnabled():
		log.Info().Str("bucket", cfg.SupabaseBucket).Msg("Using Supabase storage")
		return services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	default:
		log.Warn().Msg("No storage backend configured, uploads are disabled")
		return nil
	}
}
