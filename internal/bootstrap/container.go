package bootstrap

import (
	"context"
	"errors"
	"time"

	"saga-be/internal/config"
	"saga-be/internal/controller"
	"saga-be/internal/pkg/logger"
	"saga-be/internal/repository/memory"
	"saga-be/internal/repository/unitofwork"
	"saga-be/internal/service"
	"saga-be/pkg/catalog"
	"saga-be/pkg/llm"
	"saga-be/pkg/llm/factory"
	"saga-be/pkg/narrative"
	"saga-be/pkg/semantic"
	"saga-be/pkg/store"

	pktNats "saga-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const (
	catalogCacheTTL = 10 * time.Minute
	summaryCacheTTL = 24 * time.Hour
)

type Container struct {
	// Controllers
	AiController controller.IAiController

	// Background Services (Exposed for main.go to run)
	IndexConsumerService service.IIndexConsumerService

	Logger logger.ILogger

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	location, err := time.LoadLocation(cfg.App.TimeZone)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Unknown time zone, using UTC", map[string]interface{}{"zone": cfg.App.TimeZone, "error": err.Error()})
		location = time.UTC
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS publisher, events disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
	}

	rdb := store.NewRedisClient(cfg.App.RedisURL)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, summaries will not be cached", map[string]interface{}{"error": err.Error()})
	}
	c.closers = append(c.closers, rdb.Close)

	// 4. Upstream clients
	gateway := semantic.NewClient(semantic.Config{BaseURL: cfg.Ai.SemanticSearchURL}, sysLogger)

	movies := catalog.NewTmdbClient(catalog.TmdbConfig{
		APIKey:      cfg.Keys.Tmdb,
		BearerToken: cfg.Keys.TmdbBearer,
	})
	books := catalog.NewCombinedBookSearch(
		catalog.NewGoogleBooksClient(cfg.Keys.GoogleBooks, "", nil),
		catalog.NewOpenLibraryClient("", nil),
		sysLogger,
	)

	primary := newProvider(sysLogger, factory.ProviderConfig{
		Name:        "groq",
		APIKey:      cfg.Ai.GroqAPIKey,
		BaseURL:     cfg.Ai.GroqBaseURL,
		Model:       cfg.Ai.GroqModel,
		Temperature: cfg.Ai.GroqTemperature,
		MaxTokens:   cfg.Ai.GroqMaxTokens,
		RequireKey:  true,
	})
	secondary := newProvider(sysLogger, factory.ProviderConfig{
		Type:        cfg.Ai.LocalAiProvider,
		Name:        "local",
		BaseURL:     cfg.Ai.LocalAiBaseURL,
		Model:       cfg.Ai.LocalAiModel,
		Temperature: cfg.Ai.LocalAiTemperature,
		MaxTokens:   cfg.Ai.LocalAiMaxTokens,
	})

	// 5. Services
	var events service.EventPublisher
	if natsPub != nil {
		events = natsPub
	}
	indexer := service.NewContentIndexer(uowFactory, gateway, events, sysLogger)

	aiService := service.NewAiService(service.AiServiceDeps{
		UowFactory:   uowFactory,
		Gateway:      gateway,
		Answerer:     secondary,
		Composer:     narrative.NewComposer(primary, secondary, sysLogger),
		Movies:       movies,
		Books:        books,
		CatalogCache: memory.NewCatalogCache(catalogCacheTTL),
		SummaryCache: store.NewSummaryCache(rdb, summaryCacheTTL),
		IndexQueue:   service.NewPublisherService(cfg.Keys.IndexTopicName, pubSub),
		Indexer:      indexer,
		Events:       events,
		Logger:       sysLogger,
		Location:     location,
	})

	c.IndexConsumerService = service.NewIndexConsumerService(pubSub, cfg.Keys.IndexTopicName, indexer, sysLogger)

	// 6. Controllers
	c.AiController = controller.NewAiController(aiService, cfg.App.JwtSecret)

	return c
}

// newProvider returns nil for an unconfigured provider so the composer
// skips that tier.
func newProvider(log logger.ILogger, cfg factory.ProviderConfig) llm.LLMProvider {
	p, err := factory.NewLLMProvider(cfg)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			log.Info("BOOTSTRAP", "LLM provider not configured, tier skipped", map[string]interface{}{"provider": cfg.Name})
		} else {
			log.Warn("BOOTSTRAP", "LLM provider disabled", map[string]interface{}{"provider": cfg.Name, "error": err.Error()})
		}
		return nil
	}
	log.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{"provider": cfg.Name, "model": cfg.Model})
	return p
}

// Close releases the bus, NATS and Redis connections.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}
