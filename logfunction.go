package deploysample

import (
	"context"

	"github.com/asecurityteam/logevent/v2"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

type loggingFunction struct {
	Function
	Name   string
	Logger Logger
}

// Invoke installs a copy of the runtime logger, tagged with the function
// name and, when present, the Lambda request id.
func (f *loggingFunction) Invoke(ctx context.Context, b []byte) ([]byte, error) {
	logger := f.Logger.Copy()
	logger.SetField("function", f.Name)
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		logger.SetField("aws_request_id", lc.AwsRequestID)
	}
	ctx = logevent.NewContext(ctx, logger)
	return f.Function.Invoke(ctx, b)
}

// loggingFetcher wraps the function in a decorator that injects a logger.
type loggingFetcher struct {
	Logger  Logger
	Fetcher Fetcher
}

// Fetch calls the underlying Fetcher and adds log injection.
func (f *loggingFetcher) Fetch(ctx context.Context, name string) (Function, error) {
	r, err := f.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return &loggingFunction{Name: name, Logger: f.Logger, Function: r}, nil
}
