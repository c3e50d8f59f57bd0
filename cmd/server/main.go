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

	"redeem-base/internal/app"
	"redeem-base/internal/config"
	"redeem-base/internal/router"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	container, err := app.NewServiceContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize services")
	}
	defer container.Close()

	engine := router.SetupRouter(container)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		logger.WithField("addr", addr).Info("Redeem Base API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// In-flight redemptions get a grace period; a submitted transaction
	// cannot be aborted anyway
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("forced shutdown")
	}
}
