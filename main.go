package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/sirupsen/logrus"

	"assethub/src/api"
	"assethub/src/config"
	"assethub/src/database"
	"assethub/src/scheduler"
	"assethub/src/services"
	"assethub/src/utils"
)

func main() {
	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	level, err := logrus.ParseLevel(cfg.Service.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger := utils.NewLogger(level)

	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	server, err := api.NewServer(cfg, db, logger)
	if err != nil {
		return nil, err
	}
	httpServer := api.NewHTTPServer(cfg, server)

	dispatcher := services.NewDispatcher(db, services.LogNotifier{}, cfg.Outbox.BatchSize)
	dispatchCtx := utils.WithLogger(context.Background(), logger)
	if _, err := scheduler.NewScheduledTask(cfg.Outbox.DispatchSpec, func() {
		dispatcher.DispatchPending(dispatchCtx)
	}); err != nil {
		return nil, err
	}

	go func() {
		logger.WithField("port", cfg.Service.Port).Info("starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server stopped")
			errC <- err
		}
	}()
	return errC, nil
}
