package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/splitpot/backend/internal/events"
	"github.com/splitpot/backend/internal/exchange"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/internal/recurring"
	"github.com/splitpot/backend/internal/router"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file for local development, in production the
	// environment is already set
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the data directory
	dataDir, ok := os.LookupEnv("DB_DIR")
	if !ok {
		dataDir = "data"
	}

	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database. This also migrates the schema
	err = models.Connect(filepath.Join(dataDir, "splitpot.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Exchange rate client, configured from EXCHANGE_API_URL
	exchange.Setup()

	// Audit events are written by a background worker, optionally
	// publishing to AMQP when a broker is configured
	var publisher events.Publisher
	if amqpURL, ok := os.LookupEnv("AMQP_URL"); ok {
		client, err := events.NewClient(amqpURL, events.DefaultExchange)
		if err != nil {
			log.Warn().Err(err).Msg("AMQP unreachable, events are only persisted")
		} else {
			defer client.Close()
			publisher = client
		}
	}

	worker := events.NewWorker(models.DB, publisher, 256)
	worker.Start()
	defer worker.Shutdown()
	events.Default = worker

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		log.Fatal().Msg("environment variable API_URL must be set")
	}

	url, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg("environment variable API_URL must be a valid URL")
	}

	r, teardown, err := router.Config(url)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"))

	port, ok := os.LookupEnv("PORT")
	if !ok {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	interval := recurring.DefaultInterval
	if value, ok := os.LookupEnv("RECURRING_INTERVAL"); ok {
		interval, err = time.ParseDuration(value)
		if err != nil {
			log.Fatal().Msgf("RECURRING_INTERVAL is not a valid duration: %s", value)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		recurring.Worker(ctx, models.DB, interval)
		return nil
	})

	group.Go(func() error {
		// Shut the HTTP server down when the context is canceled, with
		// a grace period for running requests
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	log.Info().Str("port", port).Msg("backend startup complete")

	if err := group.Wait(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
