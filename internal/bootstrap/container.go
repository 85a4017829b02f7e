package bootstrap

import (
	"context"
	"log"
	"time"

	"knowthee-be/internal/config"
	"knowthee-be/internal/controller"
	"knowthee-be/internal/pkg/logger"
	"knowthee-be/internal/repository/memory"
	"knowthee-be/internal/repository/unitofwork"
	"knowthee-be/internal/service"
	"knowthee-be/pkg/assembly"
	"knowthee-be/pkg/conversation"
	embeddingopenai "knowthee-be/pkg/embedding/openai"
	"knowthee-be/pkg/intent"
	llmopenai "knowthee-be/pkg/llm/openai"
	"knowthee-be/pkg/prompt"
	"knowthee-be/pkg/resolver"
	"knowthee-be/pkg/scores"
	"knowthee-be/pkg/search"
	"knowthee-be/pkg/tokenizer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	EmployeeController controller.IEmployeeController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService

	// Exposed for startup tasks
	EmployeeService service.IEmployeeService

	// Exposed for the health probe
	DB *gorm.DB
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	timeout := time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second
	llmProvider := llmopenai.NewProvider(llmopenai.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.ChatModel,
		MaxRetries: cfg.OpenAI.MaxRetries,
		Timeout:    timeout,
	})
	embeddingProvider := embeddingopenai.NewProvider(embeddingopenai.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.EmbeddingModel,
		MaxRetries: cfg.OpenAI.MaxRetries,
		Timeout:    timeout,
	})

	// 4. Session Store
	sessionTTL := time.Duration(cfg.Memory.SessionTTLMinutes) * time.Minute
	var conversationStore memory.ConversationStore
	if cfg.Memory.SessionStore == "redis" {
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
		conversationStore = memory.NewRedisConversationStore(rdb, sessionTTL)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		conversationStore = memory.NewCacheConversationStore(sessionTTL)
		log.Printf("[INFO] Using Session Store: IN-MEMORY CACHE")
	}

	// 5. Domain Components
	counter := tokenizer.NewTiktokenCounter()
	manager := conversation.NewManager(cfg.Memory.MemoryMode, cfg.Memory.FocusMode, cfg.Memory.MaxConversationTokens)
	nameResolver := resolver.NewResolver()
	classifier := intent.NewClassifier()
	scoreEngine := scores.NewEngine(uowFactory)
	searcher := search.NewOrchestrator(embeddingProvider, uowFactory, sysLogger, cfg.Retrieval.SemanticTopK)
	assembler := assembly.NewAssembler(uowFactory, searcher, counter, sysLogger, cfg.Retrieval.MaxContextTokens, cfg.Retrieval.ChunksPerPerson)
	promptBuilder := prompt.NewBuilder()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.App.QueryEventTopic, pubSub)

	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	auditService := service.NewAuditService(pubSub, cfg.App.QueryEventTopic, auditLogger)

	employeeService := service.NewEmployeeService(uowFactory, nameResolver, publisherService, sysLogger)
	ingestionService := service.NewIngestionService(uowFactory, embeddingProvider, publisherService, sysLogger)
	queryService := service.NewQueryService(
		conversationStore,
		manager,
		nameResolver,
		classifier,
		scoreEngine,
		assembler,
		searcher,
		promptBuilder,
		llmProvider,
		counter,
		publisherService,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		ChatController:     controller.NewChatController(queryService),
		EmployeeController: controller.NewEmployeeController(employeeService, ingestionService),
		AuditService:       auditService,
		EmployeeService:    employeeService,
		DB:                 db,
	}
}
