package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"cryptofolio/src/api"
	"cryptofolio/src/config"
	"cryptofolio/src/scheduler"
	"cryptofolio/src/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
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

	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	server, err := api.NewServer(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Service.PriceWarmupCron != "" {
		if _, err := scheduler.NewScheduledTask(cfg.Service.PriceWarmupCron, server.WarmupPrices); err != nil {
			return nil, err
		}
	}

	httpServer := api.NewHTTPServer(server, cfg.Service.Port)

	go func() {
		logger.Info("Starting server on port ", cfg.Service.Port)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
