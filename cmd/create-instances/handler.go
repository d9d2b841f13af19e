package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"go.uber.org/zap"

	"lambda-handlers/internal/config"
	"lambda-handlers/internal/ec2ops"
	"lambda-handlers/internal/response"
)

const (
	defaultInstanceType   = "ubuntu"
	defaultInstanceAmount = 1
)

type Event struct {
	InstanceType   string `json:"instance_type"`
	InstanceAmount int    `json:"instance_amount" validate:"min=1,max=20"`
}

type Launcher interface {
	Launch(ctx context.Context, d ec2ops.Distro, count int) ([]string, error)
}

type Handler struct {
	launcher Launcher
	logger   *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	cfg, err := config.Load[config.EC2]()
	if err != nil {
		return nil, err
	}
	sess := session.Must(session.NewSession())

	return &Handler{launcher: ec2ops.NewLauncher(ec2.New(sess), cfg), logger: logger}, nil
}

func (h *Handler) HandleLambdaEvent(ctx context.Context, event Event) (events.APIGatewayProxyResponse, error) {
	if event.InstanceType == "" {
		event.InstanceType = defaultInstanceType
	}
	if event.InstanceAmount == 0 {
		event.InstanceAmount = defaultInstanceAmount
	}
	if err := config.Validate(event); err != nil {
		return response.Message(http.StatusBadRequest, fmt.Sprintf("invalid instance_amount %d", event.InstanceAmount)), nil
	}
	distro, err := ec2ops.ParseDistro(event.InstanceType)
	if err != nil {
		h.logger.Warn("unsupported instance type", zap.String("instance_type", event.InstanceType))
		return response.Message(http.StatusBadRequest, "Unsupported instance type "+event.InstanceType), nil
	}

	ids, err := h.launcher.Launch(ctx, distro, event.InstanceAmount)
	if err != nil {
		h.logger.Error("failed to create instances", zap.Error(err))
		return response.Message(http.StatusInternalServerError, "failed to create instances"), nil
	}
	h.logger.Info("created instances",
		zap.String("instance_type", string(distro)),
		zap.Strings("instance_ids", ids))

	return response.JSON(http.StatusOK, map[string][]string{"instance_ids": ids}), nil
}
