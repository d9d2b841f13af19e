package invoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pkg/errors"

	"lambda-handlers/internal/config"
)

// Run hands h to the Lambda runtime. Outside Lambda it invokes h once with the
// event read from the file named by the first argument, or from stdin, and
// prints the result.
func Run[E, R any](h func(context.Context, E) (R, error)) error {
	if config.InLambda() {
		lambda.Start(h)

		return nil
	}
	in, closeIn, err := eventSource()
	if err != nil {
		return err
	}
	defer closeIn()

	out, err := Local(context.Background(), in, h)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))

	return err
}

// RunEvent is Run for handlers that only report an error.
func RunEvent[E any](h func(context.Context, E) error) error {
	if config.InLambda() {
		lambda.Start(h)

		return nil
	}

	return Run(func(ctx context.Context, event E) (struct{}, error) {
		return struct{}{}, h(ctx, event)
	})
}

// Local decodes an event from r, calls h and returns the JSON encoded result.
// Empty input invokes h with the zero event.
func Local[E, R any](ctx context.Context, r io.Reader, h func(context.Context, E) (R, error)) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read event")
	}
	var event E
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode event")
		}
	}
	res, err := h(ctx, event)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(res, "", "  ")
}

func eventSource() (io.Reader, func(), error) {
	if len(os.Args) < 2 {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open event file")
	}

	return f, func() { f.Close() }, nil
}
