package app

import (
	"context"
	"fmt"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/api"
	"fxconvert/internal/catalog"
	"fxconvert/internal/config"
	"fxconvert/internal/connectivity"
	"fxconvert/internal/conversion"
	"fxconvert/internal/conversion/handler"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the connectivity monitor and HTTP server
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, catalog load)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Currency catalog
	repo, closeRepo, err := currencyRepository(startupCtx, appCfg)
	if err != nil {
		return err
	}
	defer closeRepo()
	currencies, err := catalog.Load(startupCtx, repo)
	if err != nil {
		logrus.WithError(err).Error("Failed to load supported currencies")
		return err
	}
	defaults := domain.RatePair{Base: appCfg.Session.DefaultSource, Quote: appCfg.Session.DefaultTarget}
	for _, code := range []string{defaults.Base, defaults.Quote} {
		if err = currencies.Validate(code); err != nil {
			return fmt.Errorf("invalid default session currency: %w", err)
		}
	}
	logrus.WithField("count", currencies.Len()).Info("✅ Supported currencies loaded")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	exchangeAPIBaseURL := strings.TrimSuffix(appCfg.ExchangeRateAPI.BaseURL, "/")
	rateClient := httpclient.NewExchangeRateClient(
		baseHTTPClient,
		fmt.Sprintf("%s/%s", exchangeAPIBaseURL, appCfg.ExchangeRateAPI.APIKey),
	)

	// Connectivity monitor probing the rate service host
	probe, err := connectivity.TCPProbe(exchangeAPIBaseURL)
	if err != nil {
		return err
	}
	monitor := connectivity.NewMonitor(
		probe,
		time.Duration(appCfg.Connectivity.ProbeIntervalSec)*time.Second,
		time.Duration(appCfg.Connectivity.ProbeTimeoutSec)*time.Second,
	)
	// Ensure monitor stops before exit
	defer func() {
		if shutDownErr := monitor.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Connectivity monitor shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := monitor.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start connectivity monitor")
		return startErr
	}
	logrus.WithField("online", monitor.Online()).Info("✅ Connectivity monitor activation successful")

	// Session store
	sessions, err := cache.NewSessionCache(appCfg.Session.MaxSessions, time.Duration(appCfg.Session.TTLMinutes)*time.Minute)
	if err != nil {
		return err
	}
	defer sessions.Close()

	// Presentation
	formatter, err := conversion.NewFormatter(appCfg.Display.Locale)
	if err != nil {
		return err
	}
	assets := catalog.NewAssetResolver(currencies, appCfg.Assets.FlagURLTemplate)

	// Services
	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)
	service := conversion.NewService(conversion.ServiceDeps{
		Store:        sessions,
		Validator:    currencies,
		Presenter:    conversion.NewPresenter(formatter, assets),
		Rates:        rateClient,
		Connectivity: monitor,
		Metrics:      appMetrics,
		Defaults:     defaults,
	})

	// Handlers and router
	sessionHandler := handler.NewSessionHandler(service, currencies, assets, appCfg.CORS.AllowedOrigins)
	router := api.NewRouter(api.RouterDeps{
		Handler:        sessionHandler,
		Metrics:        appMetrics,
		Gatherer:       prometheus.DefaultGatherer,
		AllowedOrigins: appCfg.CORS.AllowedOrigins,
	})

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop the monitor and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// currencyRepository picks the catalog source; the returned func releases its resources.
func currencyRepository(ctx context.Context, appCfg *config.AppConfig) (adapters.CurrencyRepository, func(), error) {
	if appCfg.Catalog.Source != config.CatalogSourcePostgres {
		logrus.Info("✅ Using built-in currency catalog")
		return catalog.StaticRepository{}, func() {}, nil
	}

	pool, err := db.CreatePoolAndPing(ctx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return nil, nil, err
	}
	logrus.Info("✅ Postgres connection successful")

	if err = db.MigratePool(ctx, pool); err != nil {
		pool.Close()
		logrus.WithError(err).Error("Failed to apply migrations")
		return nil, nil, err
	}
	logrus.Info("✅ Migrations applied")

	repo := postgres.NewCurrencyRepository(pool)
	if appCfg.Catalog.SeedDefaults {
		seeded, seedErr := catalog.SeedDefaults(ctx, repo)
		if seedErr != nil {
			pool.Close()
			logrus.WithError(seedErr).Error("Failed to seed currencies")
			return nil, nil, seedErr
		}
		logrus.WithField("count", seeded).Info("✅ Built-in currencies seeded")
	}

	return repo, pool.Close, nil
}
