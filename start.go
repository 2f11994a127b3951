package deploysample

import (
	"context"
	"fmt"
	"strings"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
	"github.com/aws/aws-lambda-go/lambda"
)

const (
	// BuildModeHTTP is the standard mode of running an HTTP server
	// that implements parts of the Lambda API.
	BuildModeHTTP = "http"
	// BuildModeHTTPMock runs the HTTP server but with mocked versions
	// of the lambda functions loaded.
	BuildModeHTTPMock = "http_mock"
	// BuildModeLambda runs the official lambda server using the lambda
	// SDK. Using this mode requires the TargetFunction value to be set.
	BuildModeLambda = "lambda"
	// BuildModeLambdaMock runs the official lambda server using the lambda
	// SDK but with a mocked version of the loaded function. Using this mode
	// requires the TargetFunction value to be set.
	BuildModeLambdaMock = "lambda_mock"

	settingsPrefix = "deploysample"
)

var (
	// BuildMode determines the behavior of the Start method. The
	// suggested way to set it is through build variables by adding
	// `-ldflags "-X github.com/asecurityteam/deploysample.BuildMode=<value>"`
	// to `go build` or `go run` commands. StartMode may be used instead
	// to pass the mode in code.
	BuildMode = BuildModeHTTP
	// TargetFunction is used when building in a native lambda mode to select a
	// single function to run. This value can be set in all the same ways as the
	// BuildMode value.
	TargetFunction = ""
	// LambdaStartFn hands a function to the lambda SDK. It only returns
	// when the SDK fails to start. Tests replace it.
	LambdaStartFn = lambda.StartHandler
)

// Start is a replacement for the lambda.Start method that introduces new
// features. By default, this method will start the lambda HTTP API and
// will invoke methods loaded using the given Fetcher.
func Start(ctx context.Context, s settings.Source, f Fetcher) error {
	return StartMode(ctx, s, f, BuildMode, TargetFunction)
}

// StartMode works just like Start but allows for explicit passing of the build
// mode and target function.
func StartMode(ctx context.Context, s settings.Source, f Fetcher, mode string, target string) error {
	switch {
	case strings.EqualFold(mode, BuildModeHTTP):
		return StartHTTP(ctx, s, f)
	case strings.EqualFold(mode, BuildModeHTTPMock):
		return StartHTTPMock(ctx, s, f)
	case strings.EqualFold(mode, BuildModeLambda):
		return StartLambda(ctx, s, f, target)
	case strings.EqualFold(mode, BuildModeLambdaMock):
		return StartLambdaMock(ctx, s, f, target)
	default:
		return fmt.Errorf("unknown build mode %s", mode)
	}
}

func prefixed(s settings.Source) settings.Source {
	return &settings.PrefixSource{Source: s, Prefix: []string{settingsPrefix}}
}

// NewHTTPRuntime builds the HTTP runtime without running it.
func NewHTTPRuntime(ctx context.Context, s settings.Source, f Fetcher, mockMode bool) (*runhttp.Runtime, error) {
	conf := &RouterConfig{
		Fetcher:  f,
		MockMode: mockMode,
	}
	router := NewRouter(conf)
	rtC := runhttp.NewComponent().WithHandler(router)
	rt := new(runhttp.Runtime)
	err := settings.NewComponent(ctx, prefixed(s), rtC, rt)
	return rt, err
}

// StartHTTP runs the HTTP API.
func StartHTTP(ctx context.Context, s settings.Source, f Fetcher) error {
	rt, err := NewHTTPRuntime(ctx, s, f, false)
	if err != nil {
		return err
	}
	return rt.Run()
}

// StartHTTPMock runs the HTTP API with mocked out functions.
func StartHTTPMock(ctx context.Context, s settings.Source, f Fetcher) error {
	rt, err := NewHTTPRuntime(ctx, s, &MockingFetcher{Fetcher: f}, true)
	if err != nil {
		return err
	}
	return rt.Run()
}

// StartLambda runs the target function using the lambda SDK.
func StartLambda(ctx context.Context, s settings.Source, f Fetcher, target string) error {
	rt, err := NewLambdaRuntime(ctx, s, f, target)
	if err != nil {
		return err
	}
	return rt.Run()
}

// StartLambdaMock runs a mocked version of the target function using the
// lambda SDK.
func StartLambdaMock(ctx context.Context, s settings.Source, f Fetcher, target string) error {
	return StartLambda(ctx, s, &MockingFetcher{Fetcher: f}, target)
}

// NewLambdaRuntime fetches the target function, wraps it with the
// configured logger and stat client, and returns a runtime ready to hand
// it to the lambda SDK.
func NewLambdaRuntime(ctx context.Context, s settings.Source, f Fetcher, target string) (*LambdaRuntime, error) {
	if target == "" {
		return nil, fmt.Errorf("a target function is required in %s and %s modes", BuildModeLambda, BuildModeLambdaMock)
	}
	lc := NewLambdaComponent()
	env := new(LambdaEnv)
	if err := settings.NewComponent(ctx, prefixed(s), lc, env); err != nil {
		return nil, err
	}
	var fetcher Fetcher = &loggingFetcher{Logger: env.Logger, Fetcher: f}
	fetcher = &statFetcher{Stat: env.Stat, Fetcher: fetcher}
	fn, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	return &LambdaRuntime{Function: fn, StartFn: LambdaStartFn}, nil
}

// LambdaRuntime runs a single function with the lambda SDK.
type LambdaRuntime struct {
	Function Function
	StartFn  func(lambda.Handler)
}

// Run blocks for as long as the lambda SDK serves the function.
func (r *LambdaRuntime) Run() error {
	r.StartFn(r.Function)
	return nil
}
