package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reefermon/internal/cache"
	"reefermon/internal/handlers"
	"reefermon/internal/logger"
	"reefermon/internal/server"
	"reefermon/internal/service"
	"reefermon/internal/telemetry"

	"github.com/spf13/viper"
)

// tokenEnv is the only place the provider token is read from; it never
// appears in config files.
const tokenEnv = "TELEMETRY_API_TOKEN"

func main() {
	// load config.yml first so the log level is configurable
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	token := os.Getenv(tokenEnv)
	if token == "" {
		log.Warnw("provider token not set; all telemetry requests will fail", "env", tokenEnv)
	}

	// wire dependencies
	client := telemetry.New(telemetry.Config{
		BaseURL: viper.GetString("telemetry.base_url"),
		Token:   token,
		Timeout: viper.GetDuration("telemetry.timeout"),
	})
	services := service.NewService(service.Deps{
		Fetcher:   client,
		Cache:     cache.New(),
		OrgTTL:    viper.GetDuration("cache.org_ttl"),
		RosterTTL: viper.GetDuration("cache.roster_ttl"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("starting server", "port", port,
			"provider", viper.GetString("telemetry.base_url"))
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
