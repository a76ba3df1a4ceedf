package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"dteai/internal/ai"
	"dteai/internal/analysis"
	"dteai/internal/business"
	"dteai/internal/chat"
	"dteai/internal/config"
	"dteai/internal/constants"
	"dteai/internal/logger"
	"dteai/pkg/bootstrap"
	"dteai/pkg/health"
	"dteai/pkg/logging"
	"dteai/pkg/metrics"
)

// publisher is the slice of the gateway the handlers need to answer a
// request.
type publisher interface {
	Publish(ctx context.Context, channel, message string) bool
}

type App struct {
	*bootstrap.Base
	dbConnector *bootstrap.DatabaseConnector
	redis       *redis.Client
	mongoClient *mongo.Client
	postgresDB  *sql.DB

	aiClient        *ai.Client
	chatService     *chat.Service
	analysisService *analysis.Service
	bus             publisher
	server          *http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	if sugaredLogger, ok := log.(*logger.SugaredLogger); ok {
		sugaredLogger.SetServiceName(constants.ServiceName)
	}
	return &App{
		Base:        bootstrap.NewBase(cfg, log),
		dbConnector: bootstrap.NewDatabaseConnector(cfg, log),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	initCtx := logging.WithServiceName(ctx, constants.ServiceName)

	if err := a.initRedis(ctx); err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// MongoDB and PostgreSQL are optional: without them chat degrades to
	// direct generation and analyses are not persisted.
	if err := a.initMongoDB(ctx); err != nil {
		a.Logger.WarnwCtx(initCtx, "MongoDB initialization failed, persistence disabled",
			"error", err,
		)
	}
	if err := a.initPostgreSQL(ctx); err != nil {
		a.Logger.WarnwCtx(initCtx, "PostgreSQL initialization failed, enriched chat disabled",
			"error", err,
		)
	}

	a.initAI(ctx)

	if err := a.initServices(ctx); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := a.InitGateway(ctx, a.redis); err != nil {
		return fmt.Errorf("failed to initialize gateway: %w", err)
	}
	a.bus = a.Gateway
	if err := a.subscribeChannels(ctx); err != nil {
		return fmt.Errorf("failed to subscribe channels: %w", err)
	}

	metrics.RegisterGatewayMetrics()
	metrics.RegisterChatMetrics()
	metrics.RegisterAnalysisMetrics()
	metrics.RegisterGenerationMetrics()
	if a.Config.CircuitBreaker.Enabled {
		metrics.RegisterCircuitBreakerMetrics()
	}

	a.initHTTPServer()

	return nil
}

func (a *App) initRedis(ctx context.Context) error {
	rdb, err := a.dbConnector.InitRedis(ctx)
	if err != nil {
		return err
	}
	a.redis = rdb
	return nil
}

func (a *App) initMongoDB(ctx context.Context) error {
	mongoClient, err := a.dbConnector.InitMongoDB(ctx)
	if err != nil {
		return err
	}
	if mongoClient != nil {
		a.mongoClient = mongoClient
	}
	return nil
}

func (a *App) initPostgreSQL(ctx context.Context) error {
	postgresDB, err := a.dbConnector.InitPostgreSQL(ctx)
	if err != nil {
		return err
	}
	if postgresDB != nil {
		a.postgresDB = postgresDB
	}
	return nil
}

func (a *App) initAI(ctx context.Context) {
	a.aiClient = ai.NewClient(a.Config.Ollama, a.Logger)

	if err := a.aiClient.Ping(ctx); err != nil {
		initCtx := logging.WithServiceName(ctx, constants.ServiceName)
		a.Logger.WarnwCtx(initCtx, "Ollama is not reachable, generation will fail until it comes up",
			"host", a.Config.Ollama.Host,
			"error", err,
		)
	}
}

func (a *App) initServices(ctx context.Context) error {
	generator := ai.Generator(a.aiClient)
	if a.Config.CircuitBreaker.Enabled {
		generator = ai.WithBreaker(generator, a.Config.CircuitBreaker)
	}

	var analysisRepo analysis.Repository
	var chatStore chat.Store
	if a.mongoClient != nil {
		mongoDB := a.mongoClient.Database(a.Config.Database.MongoDB.Database)

		repo := analysis.NewRepository(mongoDB)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to ensure analysis indexes: %w", err)
		}
		analysisRepo = repo

		messageRepo := chat.NewRepository(mongoDB)
		if err := messageRepo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to ensure message indexes: %w", err)
		}
		chatStore = messageRepo
	}

	var businessRepo chat.SummaryProvider
	if a.postgresDB != nil {
		businessRepo = business.NewRepository(a.postgresDB)
	}

	a.chatService = chat.NewService(generator, chatStore, businessRepo, a.Logger)
	a.analysisService = analysis.NewService(generator, analysisRepo, a.Config.Analysis, a.Logger)
	return nil
}

func (a *App) subscribeChannels(ctx context.Context) error {
	subscriptions := map[string]func(context.Context, string) error{
		a.Config.Bus.ChatRequests:     a.handleChatRequest,
		a.Config.Bus.AnalysisRequests: a.handleAnalysisRequest,
		a.Config.Bus.GeneralRequests:  a.handleGeneralRequest,
	}
	for channel, handler := range subscriptions {
		if err := a.Gateway.Subscribe(ctx, channel, handler); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) initHTTPServer() {
	mux := http.NewServeMux()

	healthRegistry := health.NewCheckerRegistry()
	healthRegistry.Register(health.NewRedisChecker(a.redis))
	if a.mongoClient != nil {
		healthRegistry.RegisterOptional(health.NewMongoDBChecker(a.mongoClient))
	}
	if a.postgresDB != nil {
		healthRegistry.RegisterOptional(health.NewPostgreSQLChecker(a.postgresDB))
	}
	healthRegistry.RegisterOptional(health.NewOllamaChecker(a.aiClient))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		h := healthRegistry.Check(r.Context())
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprintf(w, `{"status":"%s","timestamp":"%s"}`, h.Status, h.Timestamp.Format(time.RFC3339))
	})

	mux.Handle("/metrics", promhttp.Handler())

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler: mux,
	}
}

func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	if a.server != nil {
		g.Go(func() error {
			a.Logger.InfowCtx(ctx, "HTTP server starting", "port", a.Config.Server.Port)
			if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			return a.server.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		a.Logger.InfowCtx(gCtx, "Gateway listening",
			"channels", []string{
				a.Config.Bus.ChatRequests,
				a.Config.Bus.AnalysisRequests,
				a.Config.Bus.GeneralRequests,
			},
		)
		return a.Gateway.Listen(gCtx)
	})

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx := logging.WithServiceName(ctx, constants.ServiceName)
	a.Logger.InfowCtx(shutdownCtx, "Shutting down AI service")

	additionalShutdown := func(ctx context.Context) []error {
		return a.dbConnector.ShutdownDatabases(ctx, a.redis, a.postgresDB, a.mongoClient)
	}

	return a.Base.Shutdown(ctx, additionalShutdown)
}
