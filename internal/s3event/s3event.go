package s3event

import (
	"context"
	"net/url"

	"github.com/alitto/pond"
	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

type S3ObjectInfo struct {
	Bucket string
	Key    string
}

// Objects returns the objects named by the records that carry S3 data.
// Keys arrive URL-encoded in notifications and are returned decoded.
func Objects(event events.S3Event) []S3ObjectInfo {
	var objects []S3ObjectInfo
	for _, record := range event.Records {
		if record.S3.Bucket.Name == "" {
			continue
		}
		objects = append(objects, S3ObjectInfo{
			Bucket: record.S3.Bucket.Name,
			Key:    decodeKey(record.S3.Object.Key),
		})
	}

	return objects
}

func decodeKey(key string) string {
	decoded, err := url.QueryUnescape(key)
	if err != nil {
		return key
	}

	return decoded
}

// Process calls fn for every object with at most concurrency calls in flight.
// The first failure cancels the context passed to the remaining calls and is
// returned. The count of successful calls is returned either way.
func Process(ctx context.Context, objects []S3ObjectInfo, concurrency int, fn func(context.Context, S3ObjectInfo) error) (int, error) {
	if len(objects) == 0 {
		return 0, nil
	}
	pool := pond.New(concurrency, len(objects))
	defer pool.StopAndWait()

	group, groupCtx := pool.GroupContext(ctx)
	var processed atomic.Int64
	for _, s3obj := range objects {
		s3obj := s3obj
		group.Submit(func() error {
			if err := fn(groupCtx, s3obj); err != nil {
				return errors.Wrapf(err, "error processing s3://%s/%s", s3obj.Bucket, s3obj.Key)
			}
			processed.Inc()
			return nil
		})
	}
	err := group.Wait()

	return int(processed.Load()), err
}
