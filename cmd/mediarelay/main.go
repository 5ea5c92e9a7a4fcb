package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ardaseremet/clubhub/internal/bootstrap"
	"github.com/ardaseremet/clubhub/internal/mediarelay"
	"github.com/ardaseremet/clubhub/internal/middleware"
	"github.com/ardaseremet/clubhub/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	if cfg.MediaRelay.UploadURL == "" {
		lgr.Error().Msg("media_relay.upload_url is required")
		os.Exit(1)
	}

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(lgr))
	router.Use(middleware.Recovery(lgr))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	relay := mediarelay.NewRelay(cfg.MediaRelay.UploadURL, cfg.MediaRelay.APIKey, lgr)
	relay.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.MediaRelay.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		lgr.Info().Str("addr", srv.Addr).Msg("Media relay listening")
		serverErrors <- srv.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			lgr.Error().Err(err).Msg("Media relay failed")
			os.Exit(1)
		}
	case sig := <-osSignals:
		lgr.Info().Str("signal", sig.String()).Msg("Shutting down media relay...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lgr.Error().Err(err).Msg("Media relay shutdown error")
		os.Exit(1)
	}
	lgr.Info().Msg("Media relay stopped.")
}
