// cmd/book-organiser-web/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/book-organiser/internal/api/rest/v1"
	"github.com/MGTheTrain/book-organiser/internal/api/web"
	"github.com/MGTheTrain/book-organiser/internal/app"
	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/catalog"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/llm"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/MGTheTrain/book-organiser/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	webConfig, err := config.InitializeWebConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&webConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(webConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("Failed to close database: ", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Setup and start server and poller with graceful shutdown
	return serve(ctx, webConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services web.Services
	poller   *app.SummaryPoller
	sessions *session.Manager
	searches *session.SearchStore
	metrics  *metrics.Metrics
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.WebConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo, err := persistence.NewGormUserAccountRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user account repository: %w", err)
	}

	bookRepo, err := persistence.NewGormBookRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create book repository: %w", err)
	}

	summaryRepo, err := persistence.NewGormSummaryRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary repository: %w", err)
	}

	m := metrics.New()

	// Initialize outbound clients
	catalogClient, err := catalog.NewGoogleBooksClient(&cfg.Catalog, log, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}

	generator, err := llm.NewGenerator(&cfg.AI, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary generator: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(catalogClient, userRepo, bookRepo, summaryRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	poller, err := app.NewSummaryPoller(summaryRepo, generator, &cfg.Poller, log, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary poller: %w", err)
	}

	sessions, err := session.NewManager(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	return &appDependencies{
		db:       db,
		services: services,
		poller:   poller,
		sessions: sessions,
		searches: session.NewSearchStore(cfg.Session.SearchCacheMax, cfg.Session.SearchCacheTTL),
		metrics:  m,
	}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	catalogClient books.CatalogClient,
	userRepo accounts.UserAccountRepository,
	bookRepo books.BookRepository,
	summaryRepo summaries.SummaryRepository,
	log logger.Logger,
) (web.Services, error) {
	accountService, err := app.NewAccountService(userRepo, log)
	if err != nil {
		return web.Services{}, fmt.Errorf("failed to create account service: %w", err)
	}

	categoryService, err := app.NewCategoryService(userRepo, bookRepo, log)
	if err != nil {
		return web.Services{}, fmt.Errorf("failed to create category service: %w", err)
	}

	libraryService, err := app.NewLibraryService(catalogClient, bookRepo, userRepo, log)
	if err != nil {
		return web.Services{}, fmt.Errorf("failed to create library service: %w", err)
	}

	summaryService, err := app.NewSummaryService(summaryRepo, log)
	if err != nil {
		return web.Services{}, fmt.Errorf("failed to create summary service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return web.Services{
		Accounts:   accountService,
		Categories: categoryService,
		Library:    libraryService,
		Summaries:  summaryService,
	}, nil
}

// newRouter builds the engine serving the web application, the JSON API and metrics
func newRouter(cfg *config.WebConfig, deps *appDependencies, log logger.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), deps.metrics.GinMiddleware(), web.RequestLogger(log))

	if err := web.SetupRoutes(r, deps.services, deps.sessions, deps.searches, log); err != nil {
		return nil, fmt.Errorf("failed to set up web routes: %w", err)
	}

	v1.SetupRoutes(r,
		cfg.AllowedOrigins,
		deps.sessions,
		deps.services.Accounts,
		deps.services.Categories,
		deps.services.Library,
		deps.services.Summaries,
		log,
	)

	r.GET("/metrics", gin.WrapH(deps.metrics.Handler()))
	return r, nil
}

// serve runs the HTTP server and the summary poller until ctx is cancelled or
// one of them fails, then shuts the server down gracefully
func serve(ctx context.Context, cfg *config.WebConfig, deps *appDependencies, log logger.Logger) error {
	r, err := newRouter(cfg, deps, log)
	if err != nil {
		return err
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	})

	if cfg.Poller.Enabled {
		g.Go(func() error {
			log.Info("Starting summary poller with schedule ", cfg.Poller.Schedule)
			return deps.poller.Run(gctx)
		})
	} else {
		log.Info("Summary poller disabled")
	}

	g.Go(func() error {
		<-gctx.Done()

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("Shutting down server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
