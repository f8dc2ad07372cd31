// Package cli holds the cobra command tree and the wiring behind it.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"SmartMoneyAnalyzer/config"
	"SmartMoneyAnalyzer/internal/logger"
	"SmartMoneyAnalyzer/internal/metrics"
	"SmartMoneyAnalyzer/internal/operations/binance"
	"SmartMoneyAnalyzer/internal/operations/price"
	"SmartMoneyAnalyzer/internal/repositories"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	SourceBinance = "binance"
	SourceStore   = "store"
)

// App carries the state shared by every command once the config is loaded.
type App struct {
	configPath  string
	logLevel    string
	metricsAddr string

	cfg     *config.Config
	log     zerolog.Logger
	metrics *metrics.Recorder
	db      *gorm.DB
	cache   *redis.Client
	server  *http.Server

	// ProviderFor overrides how series sources are built.
	ProviderFor func(source string) (price.Provider, error)
}

// Execute runs the command tree until it finishes or ctx is cancelled.
func Execute(ctx context.Context, args []string, stdout io.Writer) error {
	app := &App{}
	// Post-run hooks are skipped when a command fails
	defer app.close()

	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	return root.ExecuteContext(ctx)
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "smartmoney",
		Short:         "Smart-money market analysis and signal backtesting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().StringVar(&app.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(
		analyzeCmd(app),
		narrateCmd(app),
		backtestCmd(app),
		backtestMultiCmd(app),
		strategiesCmd(app),
		ingestCmd(app),
		signalsCmd(app),
		runCmd(app),
	)
	return root
}

func (a *App) init(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.metricsAddr != "" {
		cfg.Metrics.Addr = a.metricsAddr
	}
	a.cfg = cfg

	a.log, err = logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.metrics = metrics.New()

	if cfg.Metrics.Addr != "" {
		a.serveMetrics(cfg.Metrics.Addr)
	}
	return nil
}

func (a *App) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	a.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.log.Info().Str("addr", addr).Msg("serving metrics")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
}

func (a *App) close() error {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			a.log.Warn().Err(err).Msg("metrics server shutdown")
		}
		a.server = nil
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
		a.cache = nil
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		a.db = nil
		if err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

func (a *App) database() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}

	db, err := gorm.Open(postgres.Open(a.cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	a.db = db
	return db, nil
}

func (a *App) binanceProvider() *price.BinanceProvider {
	ex := a.cfg.Exchange
	client := binance.NewBinanceClient(binance.ClientConfig{
		APIKey:      ex.APIKey,
		SecretKey:   ex.SecretKey,
		Timeout:     ex.Timeout,
		RateLimit:   ex.RateLimit,
		Burst:       ex.Burst,
		MaxRetries:  ex.MaxRetries,
		Backoff:     ex.Backoff,
		TripAfter:   ex.TripAfter,
		OpenTimeout: ex.OpenTimeout,
	}, a.log)
	return price.NewBinanceProvider(client, a.log)
}

// provider builds the series source, fronted by Redis when an address is configured.
func (a *App) provider(source string) (price.Provider, error) {
	if source == "" {
		source = a.cfg.Source
	}
	if a.ProviderFor != nil {
		return a.ProviderFor(source)
	}

	var base price.Provider
	switch source {
	case SourceBinance:
		base = a.binanceProvider()
	case SourceStore:
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		base = price.NewStoreProvider(repositories.NewPriceRepository(db))
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}

	if a.cfg.Redis.Addr == "" {
		return base, nil
	}
	if a.cache == nil {
		a.cache = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
	}
	return price.NewCachedProvider(base, a.cache, a.cfg.Redis.TTL, a.log), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
