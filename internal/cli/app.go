// Package cli wires the sysparse command line: configuration, logging, storage and use cases.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/cli/styles"
	"github.com/bnema/sysparse/internal/domain/build"
	"github.com/bnema/sysparse/internal/infrastructure/config"
	"github.com/bnema/sysparse/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/sysparse/internal/infrastructure/schema"
	"github.com/bnema/sysparse/internal/infrastructure/shell"
	"github.com/bnema/sysparse/internal/infrastructure/watcher"
	"github.com/bnema/sysparse/internal/logging"
)

const logTimeFormat = "15:04:05"

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	db        *sqlite.LazyDB

	ParseUC   *usecase.ParseUnitUseCase
	EditUC    *usecase.EditUnitUseCase
	ManageUC  *usecase.ManageUnitsUseCase
	InspectUC *usecase.InspectInterfacesUseCase
	WatchUC   *usecase.WatchUnitsUseCase
	SchemaUC  *usecase.GetSchemaUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// Options override values normally taken from config.
type Options struct {
	LogLevel string
	Strict   bool
}

// NewApp creates a new CLI application with all dependencies.
// The database is opened lazily, so commands that never touch the catalog stay cheap.
func NewApp(opts Options) (*App, error) {
	mgr, cfg := loadConfig()

	logLevel := cfg.Logging.Level
	if opts.LogLevel != "" {
		logLevel = opts.LogLevel
	}

	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(logLevel), Format: cfg.Logging.Format, TimeFormat: logTimeFormat},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			LogDir:        cfg.Logging.LogDir,
			WriteToStderr: true,
			MaxSizeMB:     cfg.Logging.MaxSizeMB,
			MaxAgeDays:    cfg.Logging.MaxAge,
			Compress:      true,
		},
	)
	if err != nil {
		// A broken log dir must not take the CLI down with it.
		logger = logging.New(logging.Config{Level: logging.ParseLevel(logLevel), Format: cfg.Logging.Format, TimeFormat: logTimeFormat})
		logger.Warn().Err(err).Msg("file logging disabled")
	}
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	unitRepo := sqlite.NewLazyUnitRepository(db)

	strict := cfg.Parser.Strict || opts.Strict
	parseUC := usecase.NewParseUnitUseCase(strict, cfg.Parser.Workers)
	manageUC := usecase.NewManageUnitsUseCase(unitRepo, parseUC)
	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond

	logger.Debug().
		Str("db_path", cfg.Database.Path).
		Bool("strict", strict).
		Int("workers", cfg.Parser.Workers).
		Msg("app initialized")

	return &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(cfg),
		db:         db,
		ParseUC:    parseUC,
		EditUC:     usecase.NewEditUnitUseCase(parseUC),
		ManageUC:   manageUC,
		InspectUC:  usecase.NewInspectInterfacesUseCase(shell.NewRunner()),
		WatchUC:    usecase.NewWatchUnitsUseCase(watcher.New(debounce), parseUC, manageUC),
		SchemaUC:   usecase.NewGetSchemaUseCase(schema.NewProvider()),
		ctx:        ctx,
		logCleanup: logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// WithContext returns a copy of the app bound to ctx, keeping the logger of the original.
func (a *App) WithContext(ctx context.Context) *App {
	cp := *a
	cp.ctx = logging.WithContext(ctx, *logging.FromContext(a.ctx))
	return &cp
}

// DatabaseOpened reports whether a command touched the catalog.
func (a *App) DatabaseOpened() bool {
	return a.db != nil && a.db.IsInitialized()
}

// loadConfig loads configuration from standard locations, falling back to defaults.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using default config\n", err)
		return nil, withPaths(config.DefaultConfig())
	}
	if err := mgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v, using defaults\n", err)
		return mgr, withPaths(config.DefaultConfig())
	}
	return mgr, mgr.Get()
}

// withPaths fills the XDG paths a loaded config would carry.
func withPaths(cfg *config.Config) *config.Config {
	if path, err := config.GetDatabaseFile(); err == nil {
		cfg.Database.Path = path
	}
	if dir, err := config.GetLogDir(); err == nil {
		cfg.Logging.LogDir = dir
	}
	return cfg
}

// ErrNotInitialized is returned by commands run before the app was built.
var ErrNotInitialized = errors.New("app not initialized")
