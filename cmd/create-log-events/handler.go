package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"go.uber.org/zap"

	"lambda-handlers/internal/config"
	"lambda-handlers/internal/cwlogs"
	"lambda-handlers/internal/response"
)

const defaultMessage = "Message from Lambda"

type Event struct {
	Messages []string `json:"messages" validate:"dive,required"`
}

type Handler struct {
	cwClient cwlogs.CloudWatchLogsAPI
	dest     cwlogs.Destination
	now      func() time.Time
	logger   *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	cfg, err := config.Load[config.Logs]()
	if err != nil {
		return nil, err
	}
	sess := session.Must(session.NewSession())

	return &Handler{
		cwClient: cloudwatchlogs.New(sess),
		dest:     cwlogs.Destination{LogGroupName: cfg.LogGroupName, LogStreamName: cfg.LogStreamName},
		now:      time.Now,
		logger:   logger,
	}, nil
}

func (h *Handler) HandleLambdaEvent(ctx context.Context, event Event) (events.APIGatewayProxyResponse, error) {
	if len(event.Messages) == 0 {
		event.Messages = []string{defaultMessage}
	}
	if err := config.Validate(event); err != nil {
		return response.Message(http.StatusBadRequest, "messages must be non-empty strings"), nil
	}

	if err := cwlogs.EnsureDestination(ctx, h.cwClient, h.dest, h.logger); err != nil {
		h.logger.Error("failed to prepare log destination", zap.Error(err))
		return response.Message(http.StatusInternalServerError, "failed to create log group or stream"), nil
	}
	written, err := cwlogs.Write(ctx, h.cwClient, h.dest, event.Messages, h.now())
	if err != nil {
		h.logger.Error("failed to put log events", zap.Int("written", written), zap.Error(err))
		return response.Message(http.StatusInternalServerError, "failed to put log events"), nil
	}
	h.logger.Info("put log events",
		zap.String("log_group", h.dest.LogGroupName),
		zap.String("log_stream", h.dest.LogStreamName),
		zap.Int("count", written))

	return response.JSON(http.StatusOK, map[string]int{"events_written": written}), nil
}
