package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/AtlasCoachBack/internal/ai"
	"github.com/saeid-a/AtlasCoachBack/internal/config"
	"github.com/saeid-a/AtlasCoachBack/internal/handlers"
	"github.com/saeid-a/AtlasCoachBack/internal/middleware"
	"github.com/saeid-a/AtlasCoachBack/internal/repository"
	"github.com/saeid-a/AtlasCoachBack/internal/services"
	statusws "github.com/saeid-a/AtlasCoachBack/internal/websocket"
)

// RegisterRoutes wires the API onto app. The returned watcher is not started;
// the caller owns its lifecycle.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) (*services.StatusWatcher, error) {
	userProfileRepo := repository.NewUserProfileRepository(db)
	registryRepo := repository.NewRegistryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	planRepo := repository.NewPlanRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	workoutLogRepo := repository.NewWorkoutLogRepository(db)
	coachMessageRepo := repository.NewCoachMessageRepository(db)
	illustrationRepo := repository.NewIllustrationRepository(db)
	accountStore := repository.NewAccountStore(db)

	var storageService services.StorageService
	if cfg.StorageEnabled() {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	aiClient := ai.NewClient(ai.Options{
		APIKey:     cfg.AIAPIKey,
		BaseURL:    cfg.AIBaseURL,
		PlanModel:  cfg.AIPlanModel,
		ChatModel:  cfg.AIChatModel,
		ImageModel: cfg.AIImageModel,
	})

	profileService := services.NewProfileService(userProfileRepo, accountStore)
	registryService := services.NewRegistryService(registryRepo)
	settingsService := services.NewSettingsService(settingsRepo, cfg.DefaultSubscriptionPrice, cfg.AdminPhone)
	subscriptionService := services.NewSubscriptionService(registryService, settingsService)
	authService := services.NewAuthService(settingsService, cfg.AdminPasswordHash)
	planService := services.NewPlanService(planRepo, completionRepo, userProfileRepo, aiClient, cfg.CoachLanguage)
	workoutLogService := services.NewWorkoutLogService(workoutLogRepo)
	coachService := services.NewCoachService(
		coachMessageRepo,
		aiClient,
		registryService,
		planService,
		userProfileRepo,
		cfg.CoachLanguage,
	)
	illustrationService := services.NewIllustrationService(planRepo, illustrationRepo, aiClient, storageService)

	statusHub := statusws.NewHub()
	go statusHub.Run()
	watcher := services.NewStatusWatcher(registryRepo, statusHub, cfg.StatusPollInterval)

	authHandler := handlers.NewAuthHandler(profileService, authService, settingsService, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileService)
	planHandler := handlers.NewPlanHandler(planService, illustrationService)
	workoutHandler := handlers.NewWorkoutHandler(workoutLogService)
	coachHandler := handlers.NewCoachHandler(coachService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, statusHub, cfg.JWTSecret)
	adminHandler := handlers.NewAdminHandler(registryService, settingsService)

	if err := registerDocsRoutes(app, cfg); err != nil {
		return nil, err
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/onboarding", authHandler.Onboarding)
	auth.Post("/login", authHandler.Login)
	auth.Post("/admin/login", authHandler.AdminLogin)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	// The websocket route authenticates from the query string, so it is
	// registered before the bearer-protected group.
	api.Use("/v1/ws/subscription", subscriptionHandler.WebSocketAuth)
	api.Get("/v1/ws/subscription", websocket.New(subscriptionHandler.HandleWebSocket))

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	admin := authProtected.Group("/admin", middleware.AdminRequired())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:phone/toggle", adminHandler.ToggleUser)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)

	userOnly := middleware.UserRequired()

	authProtected.Get("/profile", userOnly, profileHandler.GetProfile)
	authProtected.Put("/profile", userOnly, profileHandler.UpdateProfile)
	authProtected.Delete("/session", userOnly, profileHandler.Logout)
	authProtected.Get("/subscription", userOnly, subscriptionHandler.GetSubscription)

	plans := authProtected.Group("/plans", userOnly)
	plans.Get("", planHandler.GetPlans)
	plans.Post("/regenerate", planHandler.Regenerate)
	plans.Put("/workout/days/:day/order", planHandler.ReorderDay)
	plans.Get("/workout/days/:day/progress", planHandler.DayProgress)
	plans.Get("/workout/days/:day/log-template", planHandler.LogTemplate)
	plans.Post("/workout/days/:day/exercises/:index/complete", planHandler.ToggleExercise)
	plans.Post("/workout/days/:day/exercises/:index/illustration", planHandler.Illustration)

	workouts := authProtected.Group("/workouts", userOnly)
	workouts.Post("/logs", workoutHandler.CreateLog)
	workouts.Get("/logs", workoutHandler.ListLogs)
	workouts.Post("/voice", workoutHandler.ApplyVoice)

	coach := authProtected.Group("/coach", userOnly)
	coach.Post("/messages", coachHandler.SendMessage)
	coach.Get("/messages", coachHandler.GetMessages)
	coach.Delete("/messages", coachHandler.ResetConversation)

	return watcher, nil
}
