package commands

import (
	"fmt"
	"os"

	"github.com/MGTheTrain/book-organiser/internal/app"
	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/catalog"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/llm"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/MGTheTrain/book-organiser/internal/pkg/metrics"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const configFlag = "config"

// environment is built per command invocation so that --help and flag errors
// never touch the database
type environment struct {
	cfg *config.WebConfig
	log logger.Logger
	db  *gorm.DB

	users       accounts.UserAccountRepository
	bookRepo    books.BookRepository
	summaryRepo summaries.SummaryRepository
}

func loadConfig(cmd *cobra.Command) (*config.WebConfig, logger.Logger, error) {
	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config flag: %w", err)
	}

	cfg, err := config.InitializeWebConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return cfg, log, nil
}

func setupEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	env := &environment{cfg: cfg, log: log, db: db}

	if env.users, err = persistence.NewGormUserAccountRepository(db, log); err != nil {
		return nil, env.closeWith(fmt.Errorf("failed to create user account repository: %w", err))
	}
	if env.bookRepo, err = persistence.NewGormBookRepository(db, log); err != nil {
		return nil, env.closeWith(fmt.Errorf("failed to create book repository: %w", err))
	}
	if env.summaryRepo, err = persistence.NewGormSummaryRepository(db, log); err != nil {
		return nil, env.closeWith(fmt.Errorf("failed to create summary repository: %w", err))
	}

	return env, nil
}

func (env *environment) close() {
	if err := persistence.CloseDB(env.db); err != nil {
		env.log.Warn("Failed to close database: ", err)
	}
}

func (env *environment) closeWith(err error) error {
	env.close()
	return err
}

func (env *environment) accountService() (accounts.AccountService, error) {
	return app.NewAccountService(env.users, env.log)
}

func (env *environment) libraryService() (books.LibraryService, error) {
	client, err := catalog.NewGoogleBooksClient(&env.cfg.Catalog, env.log, metrics.New())
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	return app.NewLibraryService(client, env.bookRepo, env.users, env.log)
}

func (env *environment) poller() (*app.SummaryPoller, error) {
	generator, err := llm.NewGenerator(&env.cfg.AI, env.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary generator: %w", err)
	}
	return app.NewSummaryPoller(env.summaryRepo, generator, &env.cfg.Poller, env.log, metrics.New())
}

// InitCommands registers every command group and the persistent --config flag
func InitCommands(rootCmd *cobra.Command) error {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = config.DefaultConfigPath
	}
	rootCmd.PersistentFlags().String(configFlag, defaultPath, "Path to the configuration file")

	initMigrateCommand(rootCmd)
	initUserCommands(rootCmd)
	initSummaryCommands(rootCmd)
	initCatalogCommands(rootCmd)
	return nil
}
