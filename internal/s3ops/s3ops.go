package s3ops

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type S3Api interface {
	ListObjectsV2WithContext(aws.Context, *s3.ListObjectsV2Input, ...request.Option) (*s3.ListObjectsV2Output, error)
	ListBucketsWithContext(aws.Context, *s3.ListBucketsInput, ...request.Option) (*s3.ListBucketsOutput, error)
}

// ListObjectKeys returns every key under prefix, following continuation tokens.
func ListObjectKeys(ctx context.Context, client S3Api, bucket, prefix string) ([]string, error) {
	keys := []string{}
	var continuationToken *string
	for {
		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: continuationToken,
		}
		if prefix != "" {
			input.Prefix = aws.String(prefix)
		}
		resp, err := client.ListObjectsV2WithContext(ctx, input)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list objects in %s", bucket)
		}

		for _, item := range resp.Contents {
			keys = append(keys, aws.StringValue(item.Key))
		}

		if !aws.BoolValue(resp.IsTruncated) {
			break
		}
		continuationToken = resp.NextContinuationToken
	}

	return keys, nil
}

func ListBucketNames(ctx context.Context, client S3Api) ([]string, error) {
	resp, err := client.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list buckets")
	}

	return lo.Map(resp.Buckets, func(b *s3.Bucket, _ int) string {
		return aws.StringValue(b.Name)
	}), nil
}

func ParseS3URL(url string) (bucket string, prefix string, err error) {
	if !strings.HasPrefix(url, "s3://") {
		return "", "", errors.New("invalid S3 URL, missing 's3://' prefix")
	}
	trimmedS3URL := strings.TrimPrefix(url, "s3://")
	// a bare bucket lists everything in it
	bucket, prefix, _ = strings.Cut(trimmedS3URL, "/")
	if bucket == "" {
		return "", "", errors.New("invalid S3 URL, empty bucket name")
	}
	return bucket, prefix, nil
}
