package objectstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDynamoDBClient struct {
	mock.Mock
}

func (m *MockDynamoDBClient) PutItemWithContext(ctx aws.Context, input *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func TestPut(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes string attributes", func(t *testing.T) {
		mockClient := new(MockDynamoDBClient)
		mockClient.On("PutItemWithContext", ctx, &dynamodb.PutItemInput{
			TableName: aws.String("s3_keys"),
			Item: map[string]*dynamodb.AttributeValue{
				"id":     {S: aws.String("fixed-id")},
				"bucket": {S: aws.String("my-bucket")},
				"key":    {S: aws.String("my-folder/my-object.txt")},
			},
		}).Return(&dynamodb.PutItemOutput{}, nil)

		store := &Store{client: mockClient, table: "s3_keys", newID: func() string { return "fixed-id" }}
		record, err := store.Put(ctx, "my-bucket", "my-folder/my-object.txt")
		require.NoError(t, err)
		assert.Equal(t, ObjectRecord{ID: "fixed-id", Bucket: "my-bucket", Key: "my-folder/my-object.txt"}, record)

		mockClient.AssertExpectations(t)
	})

	t.Run("Fresh uuid per record", func(t *testing.T) {
		mockClient := new(MockDynamoDBClient)
		mockClient.On("PutItemWithContext", ctx, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		store := New(mockClient, "s3_keys")
		first, err := store.Put(ctx, "b", "k")
		require.NoError(t, err)
		second, err := store.Put(ctx, "b", "k")
		require.NoError(t, err)

		_, err = uuid.Parse(first.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("Put fails", func(t *testing.T) {
		mockClient := new(MockDynamoDBClient)
		mockClient.On("PutItemWithContext", ctx, mock.Anything).
			Return((*dynamodb.PutItemOutput)(nil), fmt.Errorf("ResourceNotFoundException"))

		_, err := New(mockClient, "s3_keys").Put(ctx, "b", "k")
		require.EqualError(t, err, "failed to put item into s3_keys: ResourceNotFoundException")
	})
}
