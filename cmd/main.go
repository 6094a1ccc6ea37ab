// @title        Campervan catalogue
// @version      1.0
// @description  Paginated campervan listing with a flaky mock provider, per-page sessions and a live view stream.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "campervan_catalog/docs"
	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/handlers"
	"campervan_catalog/internal/logger"
	"campervan_catalog/internal/metrics"
	"campervan_catalog/internal/repository"
	"campervan_catalog/internal/repository/db"
	"campervan_catalog/internal/server"
	"campervan_catalog/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "CATALOG"
	sourceEmbedded  = "embedded"
	sourceSQLite    = "sqlite"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// local .env is optional
	_ = godotenv.Load()

	configErr := loadConfig()

	// init logger
	log := logger.Get(viper.GetString("log.level"))
	defer func() { _ = log.Sync() }()
	if configErr != nil {
		log.Fatalw("error reading config", "err", configErr)
	}

	// open the dataset
	repos, closeRepos, err := openRepository(log)
	if err != nil {
		log.Fatalw("failed to open catalogue", "source", viper.GetString("catalog.source"), "err", err)
	}
	defer closeRepos()

	// wire dependencies
	m := metrics.New(prometheus.DefaultRegisterer)
	services := service.NewService(repos, service.Config{
		PageSize:      viper.GetInt("catalog.page_size"),
		FailureRate:   viper.GetFloat64("catalog.failure_rate"),
		FetchTimeout:  viper.GetDuration("api.timeout"),
		APIBaseURL:    viper.GetString("api.base_url"),
		SessionTTL:    viper.GetDuration("session.ttl"),
		SessionSecret: viper.GetString("session.secret"),
	}, m)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// evict idle sessions
	go services.Sweeper.Run(ctx, viper.GetDuration("session.sweep_interval"))

	// start HTTP server
	srv := server.New(server.Config{
		WriteTimeout: viper.GetDuration("api.timeout") + 10*time.Second,
	})
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)
	log.Infow("server_started",
		"port", viper.GetString("port"),
		"source", viper.GetString("catalog.source"),
		"page_size", viper.GetInt("catalog.page_size"),
		"failure_rate", viper.GetFloat64("catalog.failure_rate"),
	)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("catalog.page_size", catalog.DefaultPageSize)
	viper.SetDefault("catalog.failure_rate", service.DefaultFailureRate)
	viper.SetDefault("catalog.source", sourceEmbedded)
	viper.SetDefault("db.path", "catalog.db")
	viper.SetDefault("api.base_url", "")
	viper.SetDefault("api.timeout", catalog.DefaultTimeout)
	viper.SetDefault("session.ttl", 30*time.Minute)
	viper.SetDefault("session.sweep_interval", time.Minute)
	viper.SetDefault("session.secret", "")

	// CATALOG_SESSION_SECRET overrides session.secret
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	if viper.GetString("session.secret") == "" {
		return errors.New("session.secret must be set")
	}
	return nil
}

// openRepository picks the dataset backend from catalog.source.
func openRepository(log *logger.Logger) (*repository.Repository, func(), error) {
	switch source := viper.GetString("catalog.source"); source {
	case sourceEmbedded:
		repos, err := repository.NewFixtureRepository()
		return repos, func() {}, err
	case sourceSQLite:
		conn, err := openDB(log)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if cerr := conn.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}
		if err := seedDB(conn); err != nil {
			closeDB()
			return nil, nil, err
		}
		return repository.NewRepository(conn), closeDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog.source %q", source)
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "catalog.db")
		dbPath = "catalog.db"
	}
	return db.InitDB(dbPath)
}

// seedDB replaces the stored rows with the embedded dataset.
func seedDB(conn *sql.DB) error {
	products, err := repository.LoadFixture()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return repository.NewCatalogSQLite(conn).Seed(ctx, products)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
