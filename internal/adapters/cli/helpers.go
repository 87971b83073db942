package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/annocalc-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/annocalc-go/internal/adapters/metrics"
	"github.com/andrescamacho/annocalc-go/internal/adapters/persistence"
	applogging "github.com/andrescamacho/annocalc-go/internal/application/logging"
	"github.com/andrescamacho/annocalc-go/internal/application/mediator"
	"github.com/andrescamacho/annocalc-go/internal/application/production/queries"
	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
	"github.com/andrescamacho/annocalc-go/internal/domain/shared"
	"github.com/andrescamacho/annocalc-go/internal/infrastructure/config"
	"github.com/andrescamacho/annocalc-go/internal/infrastructure/database"
	"github.com/andrescamacho/annocalc-go/internal/infrastructure/logging"
)

// application holds everything one CLI invocation needs
type application struct {
	cfg      *config.Config
	logger   *logging.StandardLogger
	registry *metrics.Registry
	catalog  *production.Catalog
	mediator mediator.Mediator
}

// loadSettings resolves configuration: config file and environment, then
// user preferences, then global flags
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil {
			userCfg.Apply(cfg)
		}
	}

	if catalogPath != "" {
		cfg.Catalog.Source = config.CatalogSourceFile
		cfg.Catalog.Path = catalogPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// newApplication loads configuration and the catalog, validates the catalog
// and wires the mediator with its handlers and middleware
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLoggerFromConfig(&cfg.Logging, shared.NewRealClock())
	if err != nil {
		return nil, err
	}

	app := &application{cfg: cfg, logger: logger}
	ctx = applogging.WithLogger(ctx, logger)

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("catalog is inconsistent: %w", err)
	}
	app.catalog = catalog

	if err := app.wireMediator(); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

func (a *application) wireMediator() error {
	m := mediator.NewMediator()
	m.RegisterMiddleware(applogging.Middleware(a.logger))

	if a.cfg.Metrics.Enabled {
		a.registry = metrics.NewRegistry(a.cfg.Metrics.Namespace)
		queryCollector := metrics.NewQueryMetricsCollector(a.registry.Namespace())
		chainCollector := metrics.NewChainMetricsCollector(a.registry.Namespace())
		if err := queryCollector.Register(a.registry); err != nil {
			return fmt.Errorf("failed to register query metrics: %w", err)
		}
		if err := chainCollector.Register(a.registry); err != nil {
			return fmt.Errorf("failed to register chain metrics: %w", err)
		}
		m.RegisterMiddleware(metrics.PrometheusMiddleware(queryCollector, chainCollector))
	}

	resolver := services.NewChainResolver(a.catalog, services.NewModifierSelector())
	analyzer := services.NewChainAnalyzer()

	if err := mediator.RegisterHandler[*queries.CalculateChainQuery](m, queries.NewCalculateChainHandler(resolver, analyzer)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*queries.CompareScenariosQuery](m, queries.NewCompareScenariosHandler(resolver, analyzer)); err != nil {
		return err
	}

	a.mediator = m
	return nil
}

// Close flushes metrics to the textfile, if configured, and releases the log file
func (a *application) Close() error {
	var errs []error
	if a.registry != nil {
		errs = append(errs, a.registry.WriteTextfile(a.cfg.Metrics.TextfilePath))
	}
	if a.logger != nil {
		errs = append(errs, a.logger.Close())
	}
	return errors.Join(errs...)
}

// loadCatalog reads the catalog from the configured source
func loadCatalog(ctx context.Context, cfg *config.Config) (*production.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return catalogfile.NewFileSource(cfg.Catalog.Path).LoadCatalog(ctx)

	case config.CatalogSourceDatabase:
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}
		defer database.Close(db)
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
		}
		return persistence.NewGormCatalogRepository(db).LoadCatalog(ctx)

	default:
		return catalogfile.NewDemoSource().LoadCatalog(ctx)
	}
}

// parseRate parses a --rate flag value in t/min
func parseRate(value string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", value, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate must be positive, got %s", value)
	}
	return rate, nil
}

// useColors reports whether stdout is a terminal that should get ANSI colors
func useColors(cmd *cobra.Command) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
