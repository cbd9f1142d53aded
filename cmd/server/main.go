package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-catalog/internal/clips"
	"video-catalog/internal/platform/config"
	"video-catalog/internal/platform/logger"
	"video-catalog/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	storageDir := config.GetEnv("STORAGE_DIR", "storage")
	dbPath := config.GetEnv("DATABASE_PATH", "")
	maxSeconds := config.GetEnvFloat("MAX_CLIP_SECONDS", clips.DefaultMaxClipSeconds)
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")

	log := logger.New(logLevel, logFormat)

	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		log.Error("could not create storage dir", "dir", storageDir, "error", err)
		os.Exit(1)
	}

	var catalog clips.Catalog
	if dbPath != "" {
		gc, err := clips.OpenGormCatalog(dbPath)
		if err != nil {
			log.Error("could not open catalog database", "path", dbPath, "error", err)
			os.Exit(1)
		}
		catalog = gc
	} else {
		catalog = clips.NewInMemoryCatalog()
	}

	transcoder := clips.NewFFmpegTranscoder()
	if !transcoder.Available() {
		log.Warn("ffmpeg not found on PATH, container clips cannot be trimmed")
	}

	svc := clips.NewService(catalog, clips.DefaultGeometry(), transcoder, storageDir, maxSeconds, log)
	share := clips.NewShareService(catalog)
	met := metrics.New()
	h := clips.NewHandler(svc, share, log, met)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() {
			if n, err := catalog.ClipCount(); err == nil {
				met.SetCatalogClips(n)
			}
			if n, err := catalog.StoredBytes(); err == nil {
				met.SetCatalogBytes(n)
			}
		}).ServeHTTP(w, r)
	})
	r.Route("/videos", func(r chi.Router) {
		r.Post("/", h.UploadVideo)
		r.Get("/", h.ListVideos)
		r.Post("/merge", h.MergeVideos)
		r.Route("/{video_id}", func(r chi.Router) {
			r.Get("/", h.GetVideo)
			r.Post("/trim", h.TrimVideo)
			r.Post("/share", h.ShareVideo)
		})
	})
	r.Get("/share/{token}", h.ResolveShare)

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	catalogKind := "memory"
	if dbPath != "" {
		catalogKind = "sqlite"
	}
	log.Info("server starting",
		"port", port,
		"storage_dir", storageDir,
		"max_clip_seconds", maxSeconds,
		"catalog", catalogKind,
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
