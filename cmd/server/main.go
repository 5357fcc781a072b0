package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/cmomatt/referralpro/config"
	"github.com/cmomatt/referralpro/handlers"
	"github.com/cmomatt/referralpro/middleware"
	"github.com/cmomatt/referralpro/pkg/logging"
	"github.com/cmomatt/referralpro/repository"
	"github.com/cmomatt/referralpro/service"
	"github.com/cmomatt/referralpro/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to initialize Postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transcripts, err := storage.NewFromEnv()
	if err != nil {
		slog.Error("Failed to initialize transcript storage", "error", err)
		os.Exit(1)
	}
	slog.Info("Transcript storage initialized")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	jobRepo := repository.NewSummaryJobRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	diagRepo := repository.NewDiagnosticsRepository(db)

	geminiClient, err := initGemini(cfg.GeminiAPIKey)
	if err != nil {
		slog.Error("Failed to initialize Gemini", "error", err)
		os.Exit(1)
	}

	// Initialize services
	diagnostics := service.NewDiagnostics(
		service.DiagnosticsWithProber(diagRepo),
		service.DiagnosticsWithStores(service.SeedStores{
			Users:     userRepo,
			Contacts:  contactRepo,
			Referrals: referralRepo,
			Rewards:   rewardRepo,
			Meetings:  meetingRepo,
			Tasks:     taskRepo,
		}),
	)

	summaries := service.NewSummaryService(
		service.SummaryWithMeetingStore(meetingRepo),
		service.SummaryWithJobStore(jobRepo),
		service.SummaryWithGeminiClient(geminiClient),
	)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo)
	contactHandler := handlers.NewContactHandler(contactRepo)
	referralHandler := handlers.NewReferralHandler(referralRepo)
	meetingHandler := handlers.NewMeetingHandler(meetingRepo, transcripts, summaries)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	rewardHandler := handlers.NewRewardHandler(rewardRepo)
	testDBHandler := handlers.NewTestDBHandler(diagnostics)
	authHandler := handlers.NewAuthHandler(userRepo, sessionRepo)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/logout", authHandler.Logout)

	// API routes
	api := r.Group("/api")
	if cfg.AuthRequired {
		api.Use(middleware.RequireSession(sessionRepo))
		slog.Info("Session check enabled for API routes")
	}
	{
		// User endpoints
		api.GET("/users", userHandler.ListUsers)
		api.POST("/users", userHandler.CreateUser)

		// Contact endpoints
		api.GET("/contacts", contactHandler.ListContacts)
		api.POST("/contacts", contactHandler.CreateContact)
		api.GET("/contacts/:id", contactHandler.GetContact)

		// Referral endpoints
		api.GET("/referrals", referralHandler.ListReferrals)
		api.POST("/referrals", referralHandler.CreateReferral)
		api.GET("/referrals/:id", referralHandler.GetReferral)

		// Meeting endpoints
		api.GET("/meetings", meetingHandler.ListMeetings)
		api.POST("/meetings/:id/transcript", meetingHandler.UploadTranscript)
		api.GET("/meetings/:id/transcript", meetingHandler.DownloadTranscript)
		api.POST("/meetings/:id/summarize", meetingHandler.SummarizeMeeting)
		api.GET("/jobs/:id", meetingHandler.GetSummaryJob)

		// Task and reward endpoints
		api.GET("/tasks", taskHandler.ListTasks)
		api.GET("/rewards", rewardHandler.ListRewards)
		api.GET("/rewards/:id", rewardHandler.GetReward)

		// Diagnostics endpoints
		api.GET("/test-db", testDBHandler.CheckConnection)
		api.POST("/test-db", testDBHandler.SeedTestData)
		api.DELETE("/test-db", testDBHandler.ClearTestData)
	}

	slog.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	slog.Info("Postgres connection established")
	return pool, nil
}

func initGemini(apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		slog.Warn("GEMINI_API_KEY not set; summary jobs will fail until it is set")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	slog.Info("Gemini client initialized")
	return client, nil
}
