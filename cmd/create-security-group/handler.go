package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"go.uber.org/zap"

	"lambda-handlers/internal/ec2ops"
	"lambda-handlers/internal/response"
)

type SecurityGroupCreator interface {
	CreateWebGroup(ctx context.Context) (string, *ec2.AuthorizeSecurityGroupIngressOutput, error)
}

type Handler struct {
	groups SecurityGroupCreator
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	sess := session.Must(session.NewSession())
	return &Handler{groups: ec2ops.NewSecurityGroups(ec2.New(sess)), logger: logger}, nil
}

// HandleLambdaEvent ignores its event.
func (h *Handler) HandleLambdaEvent(ctx context.Context, _ json.RawMessage) (events.APIGatewayProxyResponse, error) {
	groupID, authorized, err := h.groups.CreateWebGroup(ctx)
	if err != nil {
		h.logger.Error("failed to create security group", zap.String("group_id", groupID), zap.Error(err))
		return response.Message(http.StatusInternalServerError, "failed to create security group"), nil
	}
	h.logger.Info("created security group", zap.String("group_id", groupID))

	return response.JSON(http.StatusOK, authorized), nil
}
