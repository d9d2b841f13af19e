package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"go.uber.org/zap"

	"lambda-handlers/internal/ec2ops"
	"lambda-handlers/internal/response"
)

type Handler struct {
	ec2Client ec2ops.EC2API
	logger    *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	sess := session.Must(session.NewSession())
	return &Handler{ec2Client: ec2.New(sess), logger: logger}, nil
}

func (h *Handler) HandleLambdaEvent(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	instances, err := ec2ops.ListInstances(ctx, h.ec2Client)
	if err != nil {
		h.logger.Error("failed to list instances", zap.Error(err))
		return response.Message(http.StatusInternalServerError, "failed to describe instances"), nil
	}
	h.logger.Info("described instances", zap.Int("count", len(instances)))

	if instances == nil {
		instances = []ec2ops.InstanceSummary{}
	}
	return response.JSON(http.StatusOK, instances), nil
}
