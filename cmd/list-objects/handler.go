package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"lambda-handlers/internal/response"
	"lambda-handlers/internal/s3ops"
)

const (
	msgNoBucket      = "No bucket_name present"
	msgInvalidBucket = "bucket_name not valid"
)

type Handler struct {
	s3Client s3ops.S3Api
	logger   *zap.Logger
}

func NewHandler(logger *zap.Logger) (*Handler, error) {
	sess := session.Must(session.NewSession())
	return &Handler{s3Client: s3.New(sess), logger: logger}, nil
}

// HandleLambdaEvent lists the keys of the bucket named by the bucket_name
// query parameter. bucket_name may also be an s3://bucket/prefix URL, and an
// explicit prefix parameter narrows the listing.
func (h *Handler) HandleLambdaEvent(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	bucket := strings.TrimSpace(req.QueryStringParameters["bucket_name"])
	if bucket == "" {
		return response.Message(http.StatusBadRequest, msgNoBucket), nil
	}
	prefix := req.QueryStringParameters["prefix"]
	if strings.HasPrefix(bucket, "s3://") {
		var err error
		var urlPrefix string
		bucket, urlPrefix, err = s3ops.ParseS3URL(bucket)
		if err != nil {
			return response.Message(http.StatusBadRequest, msgInvalidBucket), nil
		}
		if prefix == "" {
			prefix = urlPrefix
		}
	}

	keys, err := s3ops.ListObjectKeys(ctx, h.s3Client, bucket, prefix)
	if err != nil {
		h.logger.Warn("failed to list objects", zap.String("bucket", bucket), zap.Error(err))
		return response.Message(http.StatusBadRequest, msgInvalidBucket), nil
	}
	for _, key := range keys {
		h.logger.Info("object", zap.String("bucket", bucket), zap.String("key", key))
	}

	return response.JSON(http.StatusOK, keys), nil
}
