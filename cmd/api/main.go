package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hirelens/applicant-evaluator/internal/config"
	"hirelens/applicant-evaluator/internal/handlers"
	"hirelens/applicant-evaluator/internal/repositories"
	"hirelens/applicant-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	applicantRepo := repositories.NewApplicantRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	responseRepo := repositories.NewResponseRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize speech-to-text
	speechService, err := services.NewSpeechService(cfg.Speech.URL, cfg.Speech.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize speech-to-text: %v", err)
	}
	log.Println("✅ Speech-to-text initialized successfully")

	// Initialize Qdrant job-context index
	contextIndex, err := services.NewContextIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := contextIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize pipeline stages
	fetcher := services.NewHTTPFetcher()
	transcriptionService := services.NewTranscriptionService(
		fetcher,
		speechService,
		geminiService,
		cfg.Pipeline.TranscriptionConcurrency,
		cfg.Worker.RetryMaxAttempts,
	)
	profileService := services.NewProfileParserService(
		fetcher,
		geminiService,
		geminiService,
		cfg.Worker.RetryMaxAttempts,
		cfg.Pipeline.PortfolioMaxChars,
	)
	scoringService := services.NewScoringService(
		geminiService,
		geminiService,
		contextIndex,
		cfg.Worker.RetryMaxAttempts,
	)
	recommendationService := services.NewRecommendationService(
		geminiService,
		cfg.Worker.RetryMaxAttempts,
	)

	pipeline := services.NewPipelineService(
		transcriptionService,
		profileService,
		scoringService,
		recommendationService,
	)
	log.Println("✅ Evaluation pipeline initialized")

	loader := services.NewRepositoryLoader(applicantRepo, jobRepo, responseRepo)
	batchService := services.NewBatchService(pipeline, cfg.Pipeline.BatchDelay, nil)

	// Initialize worker
	worker := services.NewWorker(
		evalRepo,
		pipeline,
		loader,
		cfg.Worker.Concurrency,
	)

	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	evaluateHandler := handlers.NewEvaluationHandler(
		evalRepo,
		applicantRepo,
		jobRepo,
		worker,
	)
	batchHandler := handlers.NewBatchHandler(
		evalRepo,
		jobRepo,
		batchService,
		loader,
	)
	resultHandler := handlers.NewResultHandler(evalRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Applicant Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Post("/evaluate/batch", batchHandler.HandleBatchEvaluate)
	api.Get("/result/:id", resultHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Applicant Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/evaluate",
				"POST /api/v1/evaluate/batch",
				"GET /api/v1/result/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
