package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/codecommit"
	"go.uber.org/zap"

	"lambda-handlers/internal/config"
	"lambda-handlers/internal/repos"
	"lambda-handlers/internal/response"
)

type RepositoryCreator interface {
	Create(ctx context.Context) (repos.Metadata, error)
}

type Handler struct {
	repos  RepositoryCreator
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	cfg, err := config.Load[config.Repos]()
	if err != nil {
		return nil, err
	}
	sess := session.Must(session.NewSession())

	return &Handler{repos: repos.NewCreator(codecommit.New(sess), cfg.NamePrefix), logger: logger}, nil
}

func (h *Handler) HandleLambdaEvent(ctx context.Context, _ json.RawMessage) (events.APIGatewayProxyResponse, error) {
	md, err := h.repos.Create(ctx)
	if err != nil {
		h.logger.Error("failed to create repository", zap.Error(err))
		return response.Message(http.StatusInternalServerError, "failed to create repository"), nil
	}
	h.logger.Info("created repository",
		zap.String("repository_name", md.RepositoryName),
		zap.String("clone_url_http", md.CloneURLHTTP))

	return response.JSON(http.StatusOK, map[string]repos.Metadata{"repositoryMetadata": md}), nil
}
