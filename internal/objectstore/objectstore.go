// Package objectstore records S3 objects in DynamoDB, one item per
// notification record keyed by a random id.
package objectstore

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type DynamoDBAPI interface {
	PutItemWithContext(aws.Context, *dynamodb.PutItemInput, ...request.Option) (*dynamodb.PutItemOutput, error)
}

type ObjectRecord struct {
	ID     string `dynamodbav:"id"`
	Bucket string `dynamodbav:"bucket"`
	Key    string `dynamodbav:"key"`
}

type Store struct {
	client DynamoDBAPI
	table  string
	newID  func() string
}

func New(client DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table, newID: uuid.NewString}
}

// Put stores a new record for bucket/key. Repeated calls create repeated records.
func (s *Store) Put(ctx context.Context, bucket, key string) (ObjectRecord, error) {
	record := ObjectRecord{ID: s.newID(), Bucket: bucket, Key: key}
	item, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return ObjectRecord{}, errors.Wrap(err, "failed to marshal record")
	}
	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return ObjectRecord{}, errors.Wrapf(err, "failed to put item into %s", s.table)
	}

	return record, nil
}
