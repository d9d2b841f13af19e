package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"lambda-handlers/internal/response"
	"lambda-handlers/internal/s3ops"
)

type Handler struct {
	s3Client s3ops.S3Api
	logger   *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	sess := session.Must(session.NewSession())
	return &Handler{s3Client: s3.New(sess), logger: logger}, nil
}

func (h *Handler) HandleLambdaEvent(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	names, err := s3ops.ListBucketNames(ctx, h.s3Client)
	if err != nil {
		h.logger.Error("failed to list buckets", zap.Error(err))
		return response.Message(http.StatusInternalServerError, "failed to list buckets"), nil
	}
	h.logger.Info("listed buckets", zap.Int("count", len(names)))

	return response.JSON(http.StatusOK, names), nil
}
