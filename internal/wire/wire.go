// Package wire provides dependency injection for the jobtrack application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"

	cliadapter "github.com/example/jobtrack/internal/adapters/cli"
	"github.com/example/jobtrack/internal/adapters/jobsuche"
	"github.com/example/jobtrack/internal/adapters/sqlite"
	"github.com/example/jobtrack/internal/app"
	"github.com/example/jobtrack/internal/config"
	"github.com/example/jobtrack/internal/db"
	"github.com/example/jobtrack/internal/ports/primary"
)

var (
	cfg        *config.Config
	configDir  string
	configOnce sync.Once

	database *sql.DB
	dbLock   *flock.Flock

	stagingService   primary.StagingService
	postingService   primary.PostingService
	promotionService primary.PromotionService
	settingsService  primary.SettingsService
	scrapeService    primary.ScrapeService
	historyService   primary.HistoryService
	once             sync.Once
)

// Config returns the loaded configuration and the directory it was read from.
func Config() (*config.Config, string) {
	configOnce.Do(loadConfig)
	return cfg, configDir
}

func loadConfig() {
	dir, err := config.HomeDir()
	if err != nil {
		log.Fatalf("failed to resolve jobtrack home: %v", err)
	}

	loaded, err := config.LoadConfig(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	level, _ := config.ParseLogLevel(loaded.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg = loaded
	configDir = dir
}

// DB returns the shared database handle.
func DB() *sql.DB {
	once.Do(initServices)
	return database
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c, _ := Config()
	logger := slog.Default()

	lock, err := db.Lock(c.DBPath)
	if err != nil {
		log.Fatalf("failed to lock database: %v", err)
	}
	dbLock = lock

	database, err = db.Open(c.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	stagingRepo := sqlite.NewStagingRepository(database)
	postingRepo := sqlite.NewPostingRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)
	historyRepo := sqlite.NewHistoryRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(historyRepo)

	source := jobsuche.New(jobsuche.Config{
		BaseURL:           c.API.BaseURL,
		APIKey:            c.API.Key,
		Timeout:           c.API.Timeout,
		RequestsPerSecond: c.API.RequestsPerSecond,
	})

	// Create services (primary ports implementation)
	stagingService = app.NewStagingService(stagingRepo)
	postingService = app.NewPostingService(postingRepo, logWriter, logger, time.Now)
	promotionService = app.NewPromotionService(postingRepo, logWriter, logger, time.Now)
	settingsService = app.NewSettingsService(settingsRepo)
	scrapeService = app.NewScrapeService(settingsRepo, stagingRepo, source, logger)
	historyService = app.NewHistoryService(historyRepo)
}

// Close releases the database and its lock if they were opened.
func Close() {
	if database != nil {
		if err := database.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
	if dbLock != nil {
		if err := dbLock.Unlock(); err != nil {
			slog.Warn("failed to release database lock", "error", err)
		}
	}
}

// DispatcherWithOutput returns a new Dispatcher writing to the given output.
// Each call creates new adapters (adapters are stateless translators).
func DispatcherWithOutput(out io.Writer) *cliadapter.Dispatcher {
	once.Do(initServices)
	return cliadapter.NewDispatcher(
		cliadapter.NewPostingAdapter(postingService, promotionService, historyService, out),
		cliadapter.NewStagingAdapter(stagingService, scrapeService, out),
		cliadapter.NewSettingsAdapter(settingsService, out),
		out,
	)
}
