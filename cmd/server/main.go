package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"
	"resume-builder/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, notes, err := config.LoadConfig(".")
	log := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatal("could not load configuration", err)
	}
	for _, n := range notes {
		log.Info(n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)

	// export history (optional)
	var pool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		pool, err = infra.NewPool(ctx, cfg.DB.DSN)
		if err != nil {
			log.Warn("exports DB not available, export history disabled", zap.Error(err))
			pool = nil
		} else {
			defer pool.Close()
			if err := migration.RunMigrations(ctx, pool, log); err != nil {
				log.Fatal("migrations failed", err)
			}
		}
	}
	exportsRepo := repo.NewExportsRepo(pool)

	// credential store (optional redis)
	var creds usecase.CredentialStore = repo.NewMemoryCredentialStore()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pctx).Err(); err != nil {
			log.Warn("redis not available, credential kept in memory", zap.Error(err))
			_ = rdb.Close()
		} else {
			defer rdb.Close()
			creds = repo.NewRedisCredentialStore(rdb, "")
		}
		cancel()
	}

	// artifact store: minio when configured, local directory otherwise
	var store usecase.ArtifactStore
	if m := cfg.Storage.MinIO; m.Endpoint != "" {
		s, err := infra.NewMinIOStore(ctx, infra.MinIOConfig{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Bucket:    m.Bucket,
			UseSSL:    m.UseSSL,
		})
		if err != nil {
			log.Warn("minio not available, falling back to local storage", zap.Error(err))
		} else {
			store = s
		}
	}
	if store == nil {
		s, err := infra.NewLocalStore(cfg.Storage.Dir)
		if err != nil {
			log.Fatal("could not prepare the storage directory", err, zap.String("dir", cfg.Storage.Dir))
		}
		store = s
	}

	html, err := render.New()
	if err != nil {
		log.Fatal("could not load templates", err)
	}

	gateway := ai.NewClient(ai.Options{
		BaseURL:  cfg.AI.BaseURL,
		Language: cfg.AI.Language,
		Timeout:  cfg.AI.Timeout,
		Log:      log,
	})
	editor := usecase.NewEditor(usecase.UUIDGenerator{}, log)
	enricher := usecase.NewEnricher(gateway, creds, editor, cfg.AI.APIKey, log)
	exporter := usecase.NewExporter(html, infra.NewChromedpRenderer(cfg.Chrome.Path), store, exportsRepo, log, usecase.ExporterOptions{})

	h := httpadapter.NewHandler(httpadapter.Deps{
		Sessions: repo.NewSessionStore(),
		Editor:   editor,
		Enricher: enricher,
		Exporter: exporter,
		HTML:     html,
		Exports:  exportsRepo,
		Log:      log,
	})

	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		BodyLimit:             10 * 1024 * 1024,
		Immutable:             true,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	app.Use(recover.New())
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", httpadapter.MetricsHandler(reg))
	h.Register(app)

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal("server failed", err)
		}
	}()
	log.Info("server started", zap.String("port", cfg.App.Port))

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", err)
	}
}
