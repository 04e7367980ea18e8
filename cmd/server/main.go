package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/iliyamo/movie-list/internal/config"
	"github.com/iliyamo/movie-list/internal/database"
	"github.com/iliyamo/movie-list/internal/handler"
	"github.com/iliyamo/movie-list/internal/logging"
	"github.com/iliyamo/movie-list/internal/queue"
	"github.com/iliyamo/movie-list/internal/repository"
	"github.com/iliyamo/movie-list/internal/router"
	"github.com/iliyamo/movie-list/internal/service"
	"github.com/iliyamo/movie-list/internal/session"
	"github.com/iliyamo/movie-list/internal/tmdb"
)

const sessionKeyPrefix = "movielist:session"

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	app := &cli.Command{
		Name:   "movielist",
		Usage:  "Keep a personal list of movies with your own ratings and reviews",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the web server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create the database tables and exit",
				Action: migrate,
			},
			{
				Name:  "consume",
				Usage: "Append list activity events from the broker to a log file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "amqp-url",
						Usage:   "broker URL",
						Sources: cli.EnvVars("AMQP_URL", "RABBITMQ_URL"),
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "directory that receives " + queue.ActivityLogName,
						Value: ".",
					},
				},
				Action: consume,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("movielist failed")
	}
}

func serve(ctx context.Context, _ *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logging.Logger()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db, cfg.DBDriver); err != nil {
		return err
	}

	store, closeStore, err := newSessionStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeStore()

	accounts := repository.NewAccountRepo(db)
	entries := repository.NewEntryRepo(db)
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	provider := tmdb.NewClient(cfg.TMDBAPIKey, tmdb.Options{
		SearchURL: cfg.TMDBSearchURL,
		ImageBase: cfg.TMDBImageBase,
		Timeout:   cfg.TMDBTimeout,
	})
	events := service.NewAMQPPublisher(cfg.AMQPURL)

	e, err := router.NewServer(router.Deps{
		DB:           db,
		Sessions:     sessions,
		Accounts:     accounts,
		Auth:         handler.NewAuthHandler(accounts, sessions, cfg.BcryptCost),
		Movies:       handler.NewMovieHandler(entries, provider, events, cfg.EnforceOwnership),
		CSRF:         cfg.CSRFEnabled,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("env", cfg.Env).
		Str("db", cfg.DBDriver).
		Str("sessions", cfg.SessionStore).
		Bool("activity_events", cfg.AMQPURL != "").
		Msg("listening")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func migrate(ctx context.Context, _ *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db, cfg.DBDriver); err != nil {
		return err
	}
	logging.Logger().Info().Str("db", cfg.DBDriver).Msg("schema ready")
	return nil
}

func consume(ctx context.Context, cmd *cli.Command) error {
	logging.Init(logging.Config{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})
	url := cmd.String("amqp-url")
	if url == "" {
		return errors.New("consume: AMQP_URL or --amqp-url is required")
	}
	dir := cmd.String("dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	logging.Logger().Info().Str("dir", dir).Msg("consuming activity events")
	err := queue.StartActivityConsumer(ctx, url, dir)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newSessionStore picks the server-side session store.  The returned func
// releases it.
func newSessionStore(ctx context.Context, cfg config.Config, db *sql.DB) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rdb, sessionKeyPrefix), func() { _ = rdb.Close() }, nil
	case config.SessionStoreSQL:
		repo := repository.NewSessionRepo(db)
		n, err := repo.DeleteExpired(ctx, time.Now())
		if err != nil {
			return nil, nil, err
		}
		logging.Logger().Debug().Int64("purged", n).Msg("expired sessions removed")
		return session.NewSQLStore(repo), func() {}, nil
	default:
		return session.NewMemoryStore(), func() {}, nil
	}
}
