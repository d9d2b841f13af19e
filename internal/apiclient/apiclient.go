// Package apiclient calls the API Gateway endpoints in front of the
// list-objects and list-buckets handlers.
package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/pkg/errors"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryCount = 2
)

type Client struct {
	http     *httpclient.Client
	endpoint string
}

// Result is the status code of a call and the names it returned.
type Result struct {
	StatusCode int
	Items      []string
}

func New(endpoint string) *Client {
	backoff := heimdall.NewConstantBackoff(200*time.Millisecond, 100*time.Millisecond)
	return &Client{
		endpoint: endpoint,
		http: httpclient.NewClient(
			httpclient.WithHTTPTimeout(defaultTimeout),
			httpclient.WithRetryCount(defaultRetryCount),
			httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		),
	}
}

// ListObjects calls the endpoint with ?bucket_name=bucket.
func (c *Client) ListObjects(ctx context.Context, bucket string) (Result, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return Result{}, errors.Wrapf(err, "invalid endpoint %q", c.endpoint)
	}
	q := u.Query()
	q.Set("bucket_name", bucket)
	u.RawQuery = q.Encode()

	return c.get(ctx, u.String())
}

func (c *Client) ListBuckets(ctx context.Context) (Result, error) {
	return c.get(ctx, c.endpoint)
}

func (c *Client) get(ctx context.Context, target string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to build request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, errors.Wrapf(err, "GET %s", target)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{StatusCode: resp.StatusCode}, errors.Wrap(err, "failed to read response")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return Result{StatusCode: resp.StatusCode}, errors.Errorf("request failed: %s", decodeMessage(body))
	}
	items, err := decodeList(body)
	if err != nil {
		return Result{StatusCode: resp.StatusCode}, err
	}

	return Result{StatusCode: resp.StatusCode, Items: items}, nil
}

// decodeList accepts a bare JSON array or a non-proxy integration envelope
// whose body field holds the JSON array as a string.
func decodeList(data []byte) ([]string, error) {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var envelope struct {
		Body *string `json:"body"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Body == nil {
		return nil, errors.Errorf("unexpected response %s", decodeMessage(data))
	}
	if err := json.Unmarshal([]byte(*envelope.Body), &items); err != nil {
		return nil, errors.Errorf("unexpected response body %s", decodeMessage([]byte(*envelope.Body)))
	}

	return items, nil
}

func decodeMessage(data []byte) string {
	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		return msg
	}

	return string(data)
}
