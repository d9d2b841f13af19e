package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"lambda-handlers/internal/s3event"
)

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	return &Handler{logger: logger}, nil
}

// HandleLambdaEvent logs the key of every object in the notification.
func (h *Handler) HandleLambdaEvent(_ context.Context, event events.S3Event) error {
	h.logger.Info("received event", zap.Any("event", event))

	objects := s3event.Objects(event)
	if skipped := len(event.Records) - len(objects); skipped > 0 {
		h.logger.Warn("skipped records without s3 data", zap.Int("count", skipped))
	}
	for _, obj := range objects {
		h.logger.Info("object created", zap.String("bucket", obj.Bucket), zap.String("key", obj.Key))
	}

	return nil
}
