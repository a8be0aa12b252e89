package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dogwatch/dogwatch-backend/internal/archive"
	"github.com/dogwatch/dogwatch-backend/internal/indexer"
	"github.com/dogwatch/dogwatch-backend/internal/ingest"
	"github.com/dogwatch/dogwatch-backend/internal/metrics"
	"github.com/dogwatch/dogwatch-backend/internal/store"
	"github.com/dogwatch/dogwatch-backend/internal/transport"
)

type config struct {
	Addr          string        `long:"addr" env:"DOGWATCH_ADDR" description:"http listen address" default:":8080"`
	UpdateSecret  string        `long:"update-secret" env:"DOGWATCH_UPDATE_SECRET" description:"shared secret for the update trigger" required:"true"`
	RuneID        string        `long:"rune-id" env:"DOGWATCH_RUNE_ID" description:"rune identifier at the indexer" default:"840000:3"`
	IndexerURL    string        `long:"indexer-url" env:"DOGWATCH_INDEXER_URL" description:"primary indexer base url" default:"https://open-api.unisat.io"`
	IndexerKey    string        `long:"indexer-key" env:"DOGWATCH_INDEXER_KEY" description:"primary indexer api key"`
	FallbackURL   string        `long:"fallback-url" env:"DOGWATCH_FALLBACK_URL" description:"fallback indexer base url" default:"https://www.oklink.com"`
	FallbackKey   string        `long:"fallback-key" env:"DOGWATCH_FALLBACK_KEY" description:"fallback indexer api key"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"DOGWATCH_HTTP_TIMEOUT" description:"timeout per indexer request" default:"15s"`
	RedisAddr     string        `long:"redis-addr" env:"DOGWATCH_REDIS_ADDR" description:"redis address" default:"localhost:6379"`
	RedisPassword string        `long:"redis-password" env:"DOGWATCH_REDIS_PASSWORD" description:"redis password"`
	RedisDB       int           `long:"redis-db" env:"DOGWATCH_REDIS_DB" description:"redis database" default:"0"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"DOGWATCH_CLICKHOUSE_DSN" description:"optional clickhouse archive DSN"`

	ArchiveFlushSize     int           `long:"archive-flush-size" env:"DOGWATCH_ARCHIVE_FLUSH_SIZE" description:"archive batch size" default:"500"`
	ArchiveFlushInterval time.Duration `long:"archive-flush-interval" env:"DOGWATCH_ARCHIVE_FLUSH_INTERVAL" description:"archive flush interval" default:"30s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	_ = godotenv.Load()

	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	documentStore, err := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, metrics.NewStore())
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer func() {
		_ = documentStore.Close()
	}()
	if err := documentStore.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	primary, err := indexer.NewClient(cfg.IndexerURL, cfg.IndexerKey, cfg.RuneID, cfg.HTTPTimeout, metrics.NewIndexerClient("primary"))
	if err != nil {
		return fmt.Errorf("init primary indexer client: %w", err)
	}
	fallback, err := indexer.NewFallbackClient(cfg.FallbackURL, cfg.FallbackKey, cfg.RuneID, cfg.HTTPTimeout, metrics.NewIndexerClient("fallback"))
	if err != nil {
		return fmt.Errorf("init fallback indexer client: %w", err)
	}

	fetcher, err := ingest.NewFetcher(primary, ingest.DefaultFetcherConfig(), logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	var analyticArchive ingest.Archive
	if cfg.ClickhouseDSN != "" {
		repo, archiveErr := archive.NewRepository(cfg.ClickhouseDSN, metrics.NewArchive())
		if archiveErr != nil {
			return fmt.Errorf("init archive: %w", archiveErr)
		}
		buffered, archiveErr := archive.NewBuffered(repo, cfg.ArchiveFlushSize, cfg.ArchiveFlushInterval, logger)
		if archiveErr != nil {
			return fmt.Errorf("init archive batcher: %w", archiveErr)
		}
		buffered.Start(ctx)
		defer buffered.Stop()
		analyticArchive = buffered
	}

	updater, err := ingest.NewUpdateService(fetcher, fallback, documentStore, analyticArchive, metrics.NewUpdate(), logger)
	if err != nil {
		return fmt.Errorf("init update service: %w", err)
	}

	handler, err := transport.NewHandler(updater, documentStore, cfg.UpdateSecret, logger)
	if err != nil {
		return fmt.Errorf("init http handler: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("starting http server", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
