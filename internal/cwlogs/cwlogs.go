package cwlogs

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type CloudWatchLogsAPI interface {
	PutLogEventsWithContext(aws.Context, *cloudwatchlogs.PutLogEventsInput, ...request.Option) (*cloudwatchlogs.PutLogEventsOutput, error)
	CreateLogGroupWithContext(aws.Context, *cloudwatchlogs.CreateLogGroupInput, ...request.Option) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStreamWithContext(aws.Context, *cloudwatchlogs.CreateLogStreamInput, ...request.Option) (*cloudwatchlogs.CreateLogStreamOutput, error)
}

type Destination struct {
	LogGroupName  string
	LogStreamName string
}

const (
	// maxBatchSize The maximum batch size of a PutLogEvents request to CloudWatch is 1MB (1_048_576 bytes)
	maxBatchSize = 1_048_576
	// maxBatchCount The maximum number of events in a PutLogEvents request to CloudWatch is 10_000
	maxBatchCount = 10_000
)

// EnsureDestination creates the log group and stream, treating
// ResourceAlreadyExistsException as success.
func EnsureDestination(ctx context.Context, client CloudWatchLogsAPI, dest Destination, logger *zap.Logger) error {
	logger.Info("creating log group", zap.String("log_group", dest.LogGroupName))
	_, err := client.CreateLogGroupWithContext(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(dest.LogGroupName),
	})
	if err := ignoreAlreadyExists(err, logger); err != nil {
		return errors.Wrapf(err, "failed to create log group %s", dest.LogGroupName)
	}

	logger.Info("creating log stream",
		zap.String("log_group", dest.LogGroupName),
		zap.String("log_stream", dest.LogStreamName))
	_, err = client.CreateLogStreamWithContext(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(dest.LogGroupName),
		LogStreamName: aws.String(dest.LogStreamName),
	})
	if err := ignoreAlreadyExists(err, logger); err != nil {
		return errors.Wrapf(err, "failed to create log stream %s", dest.LogStreamName)
	}

	return nil
}

func ignoreAlreadyExists(err error, logger *zap.Logger) error {
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == cloudwatchlogs.ErrCodeResourceAlreadyExistsException {
		logger.Warn("resource already exists", zap.String("message", aerr.Message()))
		return nil
	}

	return err
}

// Write sends messages stamped with now, split into as many requests as the
// PutLogEvents limits require. It returns the number of events written.
func Write(ctx context.Context, client CloudWatchLogsAPI, dest Destination, messages []string, now time.Time) (int, error) {
	events := make([]*cloudwatchlogs.InputLogEvent, 0, len(messages))
	for _, msg := range messages {
		events = append(events, &cloudwatchlogs.InputLogEvent{
			Message:   aws.String(msg),
			Timestamp: aws.Int64(now.UnixMilli()),
		})
	}
	written := 0
	for _, batch := range Batch(events) {
		if err := SendEventsToCloudWatch(ctx, client, dest, batch); err != nil {
			return written, errors.Wrap(err, "error sending events to CloudWatch")
		}
		written += len(batch)
	}

	return written, nil
}

// Batch splits events so no batch exceeds maxBatchSize bytes or maxBatchCount events.
func Batch(events []*cloudwatchlogs.InputLogEvent) [][]*cloudwatchlogs.InputLogEvent {
	var batches [][]*cloudwatchlogs.InputLogEvent
	var current []*cloudwatchlogs.InputLogEvent
	var currentBatchSize int
	for _, event := range events {
		eventSize := EstimateEventSize(event)
		if len(current) > 0 && (currentBatchSize+eventSize > maxBatchSize || len(current) >= maxBatchCount) {
			batches = append(batches, current)
			current = nil
			currentBatchSize = 0
		}
		current = append(current, event)
		currentBatchSize += eventSize
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}

func SendEventsToCloudWatch(ctx context.Context, client CloudWatchLogsAPI, dest Destination, events []*cloudwatchlogs.InputLogEvent) error {
	// Log events in a single PutLogEvents request must be in chronological order
	sort.SliceStable(events, func(i, j int) bool {
		return aws.Int64Value(events[i].Timestamp) < aws.Int64Value(events[j].Timestamp)
	})
	_, err := client.PutLogEventsWithContext(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogEvents:     events,
		LogGroupName:  aws.String(dest.LogGroupName),
		LogStreamName: aws.String(dest.LogStreamName),
	})

	return err
}

func EstimateEventSize(event *cloudwatchlogs.InputLogEvent) int {
	// Request size to CloudWatch is calculated as the sum of all event messages in UTF-8, plus 26 bytes for each log event
	// https://docs.aws.amazon.com/AmazonCloudWatch/latest/logs/cloudwatch_limits_cwl.html
	return len(aws.StringValue(event.Message)) + 26
}
