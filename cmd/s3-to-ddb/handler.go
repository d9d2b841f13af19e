package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"go.uber.org/zap"

	"lambda-handlers/internal/config"
	"lambda-handlers/internal/objectstore"
	"lambda-handlers/internal/s3event"
)

type Recorder interface {
	Put(ctx context.Context, bucket, key string) (objectstore.ObjectRecord, error)
}

type Handler struct {
	store       Recorder
	concurrency int
	logger      *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	cfg, err := config.Load[config.ObjectStore]()
	if err != nil {
		return nil, err
	}
	sess := session.Must(session.NewSession())

	return &Handler{
		store:       objectstore.New(dynamodb.New(sess), cfg.TableName),
		concurrency: cfg.Concurrency,
		logger:      logger,
	}, nil
}

// HandleLambdaEvent stores one item per object in the notification. An error
// makes the platform retry the whole event, so items may be duplicated.
func (h *Handler) HandleLambdaEvent(ctx context.Context, event events.S3Event) error {
	objects := s3event.Objects(event)
	stored, err := s3event.Process(ctx, objects, h.concurrency, func(ctx context.Context, obj s3event.S3ObjectInfo) error {
		record, err := h.store.Put(ctx, obj.Bucket, obj.Key)
		if err != nil {
			return err
		}
		h.logger.Debug("stored object",
			zap.String("id", record.ID),
			zap.String("bucket", record.Bucket),
			zap.String("key", record.Key))
		return nil
	})
	h.logger.Info("processed records", zap.Int("stored", stored), zap.Int("records", len(event.Records)))

	return err
}
