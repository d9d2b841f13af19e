package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleLambdaEvent(t *testing.T) {
	t.Run("Logs every key", func(t *testing.T) {
		eventData := `{
			"Records": [
				{"s3": {"bucket": {"name": "my-bucket"}, "object": {"key": "my-folder/my-object1.txt"}}},
				{"s3": {"bucket": {"name": "my-bucket"}, "object": {"key": "my-folder/my+object2.txt"}}}
			]
		}`
		var event events.S3Event
		require.NoError(t, json.Unmarshal([]byte(eventData), &event))

		core, logs := observer.New(zapcore.InfoLevel)
		handler := &Handler{logger: zap.New(core)}

		err := handler.HandleLambdaEvent(context.Background(), event)
		require.NoError(t, err)

		assert.Equal(t, 1, logs.FilterMessage("received event").Len())
		entries := logs.FilterMessage("object created").All()
		require.Len(t, entries, 2)
		assert.Equal(t, "my-folder/my-object1.txt", entries[0].ContextMap()["key"])
		assert.Equal(t, "my-folder/my object2.txt", entries[1].ContextMap()["key"])
	})

	t.Run("Records without s3 data", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		handler := &Handler{logger: zap.New(core)}

		err := handler.HandleLambdaEvent(context.Background(), events.S3Event{Records: []events.S3EventRecord{{EventSource: "aws:sqs"}}})
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("skipped records without s3 data").Len())
		assert.Equal(t, 0, logs.FilterMessage("object created").Len())
	})

	t.Run("No records", func(t *testing.T) {
		handler := &Handler{logger: zap.NewNop()}
		require.NoError(t, handler.HandleLambdaEvent(context.Background(), events.S3Event{}))
	})
}
