package main

import (
	"context"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/kompassi/internal/answers"
	"github.com/myrjola/kompassi/internal/broker"
	"github.com/myrjola/kompassi/internal/catalog"
	"github.com/myrjola/kompassi/internal/envstruct"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/insights"
	"github.com/myrjola/kompassi/internal/logging"
	"github.com/myrjola/kompassi/internal/pprofserver"
	"github.com/myrjola/kompassi/internal/ratelimit"
	"github.com/myrjola/kompassi/internal/repositories"
	"github.com/myrjola/kompassi/internal/sqlite"
	"github.com/myrjola/kompassi/internal/webauthnhandler"
	"log/slog"
	"os"
	"time"
)

type application struct {
	logger          *slog.Logger
	catalog         *catalog.Catalog
	sessionManager  *scs.SessionManager
	webAuthnHandler *webauthnhandler.WebAuthnHandler
	answers         answers.Store
	hotTopics       *repositories.HotTopicRepository
	snapshots       *repositories.SnapshotRepository
	insights        *insights.Generator
	insightBroker   *broker.StreamBroker
	insightLimiter  *ratelimit.Limiter
	htmx            *htmx.HTMX
}

type config struct {
	Addr         string `env:"KOMPASSI_ADDR" envDefault:"localhost:4000"`
	FQDN         string `env:"KOMPASSI_FQDN" envDefault:"localhost"`
	SQLiteURL    string `env:"KOMPASSI_SQLITE_URL" envDefault:"./kompassi.sqlite"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	PprofPort    string `env:"KOMPASSI_PPROF_PORT" envDefault:""`
}

const (
	insightsPerMinute = 5
	insightsBurst     = 2
)

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err error
		cfg config
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if cfg.PprofPort != "" {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	dbs, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}
	go dbs.StartDatabaseOptimizer(ctx)

	cat, err := catalog.Load()
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	webAuthnHandler, err := webauthnhandler.New(cfg.FQDN, []string{"http://" + cfg.Addr}, logger, sessionManager, dbs)
	if err != nil {
		return errors.Wrap(err, "new webauthn handler")
	}

	var aiClient *insights.Client
	if cfg.OpenAIAPIKey != "" {
		aiClient = insights.NewClient(cfg.OpenAIAPIKey)
	} else {
		logger.LogAttrs(ctx, slog.LevelInfo, "OPENAI_API_KEY not set, live insights are disabled")
	}

	insightBroker := broker.NewStreamBroker()
	go insightBroker.Start()
	defer insightBroker.Stop()

	insightLimiter := ratelimit.New(insightsPerMinute, insightsBurst)
	insightLimiter.StartCleanup(ctx.Done(), logger)

	app := application{
		logger:          logger,
		catalog:         cat,
		sessionManager:  sessionManager,
		webAuthnHandler: webAuthnHandler,
		answers:         answers.NewCachedStore(repositories.NewAnswerRepository(dbs, logger), logger),
		hotTopics:       repositories.NewHotTopicRepository(dbs, logger),
		snapshots:       repositories.NewSnapshotRepository(dbs, logger),
		insights:        insights.NewGenerator(aiClient, cat, logger),
		insightBroker:   insightBroker,
		insightLimiter:  insightLimiter,
		htmx:            htmx.New(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))

	// Missing .env is fine, production configures the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env", "err", err)
	}

	ctx := context.Background()
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}
