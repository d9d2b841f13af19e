package main

import (
	"log"

	"go.uber.org/zap"

	"lambda-handlers/internal/invoke"
	"lambda-handlers/internal/logging"
)

func main() {
	logger, err := logging.New()
	if err != nil {
		log.Fatalln(err)
	}
	defer logger.Sync() //nolint:errcheck

	h, err := NewHandler(logger)
	if err != nil {
		logger.Fatal("failed to create handler", zap.Error(err))
	}
	if err := invoke.Run(h.HandleLambdaEvent); err != nil {
		logger.Fatal("invocation failed", zap.Error(err))
	}
}
