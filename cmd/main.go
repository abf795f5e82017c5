package main

import (
	"fmt"
	"log"
	"time"

	"github.com/mockmate/interview-coach-server/internal/config"
	"github.com/mockmate/interview-coach-server/internal/database"
	"github.com/mockmate/interview-coach-server/internal/domain"
	"github.com/mockmate/interview-coach-server/internal/handler"
	"github.com/mockmate/interview-coach-server/internal/repository"
	"github.com/mockmate/interview-coach-server/internal/routes"
	"github.com/mockmate/interview-coach-server/internal/service"
	"github.com/mockmate/interview-coach-server/pkg/genai"
	"github.com/mockmate/interview-coach-server/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	questionRepo := repository.NewQuestionRepository(cfg.Store.QuestionBankPath)
	if _, err := questionRepo.LoadBank(); err != nil {
		log.Fatalf("Failed to load question bank: %v", err)
	}

	sessionStore, cleanup, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	defer cleanup()

	var generator domain.TextGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := genai.NewClient(genai.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			log.Fatalf("Failed to create genai client: %v", err)
		}
		generator = client
	} else {
		log.Println("GEMINI_API_KEY not set; answer submissions will fail with a configuration error")
	}

	evaluationService := service.NewEvaluationService(
		generator,
		time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second,
	)
	sessionService := service.NewSessionService(
		sessionStore,
		questionRepo,
		evaluationService,
		cfg.Interview.QuestionsPerSession,
	)

	sessionHandler := handler.NewSessionHandler(sessionService)

	app := fiber.New(fiber.Config{
		AppName:      "Interview Coach API",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: false,
	}))

	routes.Setup(app, routes.Handlers{
		Session: sessionHandler,
	})

	port := cfg.App.Port
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newSessionStore(cfg *config.Config) (domain.SessionStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendFile:
		return repository.NewSessionFileRepository(cfg.Store.SessionsPath), func() {}, nil
	case config.StoreBackendRedis:
		client, err := database.NewRedisConnection(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSessionRedisRepository(client), func() { client.Close() }, nil
	case config.StoreBackendPostgres:
		db, err := database.NewPostgresConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store, err := repository.NewSessionPostgresRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return response.Error(c, code, err.Error())
}
