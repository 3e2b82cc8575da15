package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ai-coursegen-be/internal/config"
	"ai-coursegen-be/internal/controller"
	"ai-coursegen-be/internal/handler"
	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/internal/pkg/mailer"
	"ai-coursegen-be/internal/repository/memory"
	"ai-coursegen-be/internal/repository/unitofwork"
	"ai-coursegen-be/internal/service"
	"ai-coursegen-be/internal/websocket"
	"ai-coursegen-be/pkg/crawler"
	"ai-coursegen-be/pkg/embedding"
	"ai-coursegen-be/pkg/llm/factory"
	pkgNats "ai-coursegen-be/pkg/nats"
	"ai-coursegen-be/pkg/retrieval"
	"ai-coursegen-be/pkg/workflow"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	CourseController controller.ICourseController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.SMTP.Email,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Workflow Engine
	searchClient := crawler.NewSearchClient(cfg.Keys.Serper, "")
	crawlService := crawler.NewCrawler(searchClient, llmProvider, sysLogger)

	baseUow := unitofwork.NewUnitOfWork(db)
	retriever := retrieval.NewVectorRetriever(
		embeddingProvider,
		baseUow.LessonEmbeddingRepository(),
		baseUow.ScrapedEmbeddingRepository(),
		sysLogger,
	)

	engineCfg := workflow.Config{
		MaxIterations: cfg.Workflow.MaxIterations,
		StepBudget:    cfg.Workflow.StepBudget,
		RunTimeout:    cfg.Workflow.RunTimeout,
		LoopPolicy:    workflow.LoopPolicy(cfg.Workflow.LoopPolicy),
	}
	engine := workflow.NewEngine(engineCfg, llmProvider, retriever, crawlService, sysLogger)

	// 6. Services
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IndexCourseTopic,
		uowFactory,
		embeddingProvider,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, sessionRepo, cfg.App.JWTSecret)
	courseService := service.NewCourseService(
		uowFactory,
		engine,
		wsHub,
		natsPub,
		pubSub,
		cfg.Keys.IndexCourseTopic,
		emailService,
		embeddingProvider,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		CourseController: controller.NewCourseController(courseService),

		ConsumerService: consumerService,
		ProgressHandler: handler.NewProgressHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,
	}
}
