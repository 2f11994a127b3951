package main

// The deployment sample binary. By default it serves the Lambda Invoke
// API over HTTP:
//
//		curl --request POST localhost:8080/2015-03-31/functions/page/invocations
//
// Build with
// `-ldflags "-X github.com/asecurityteam/deploysample.BuildMode=lambda"` to
// run under the native lambda SDK instead.

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/asecurityteam/deploysample"
	"github.com/asecurityteam/deploysample/pkg/sample"
	"github.com/asecurityteam/settings/v2"
	"github.com/joho/godotenv"
)

// parseFlags returns the dotenv file to load and whether help was asked for.
func parseFlags(args []string) (string, bool, error) {
	fs := flag.NewFlagSet("deploysample", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	envFile := fs.String("env", "", "dotenv file loaded before reading settings")
	err := fs.Parse(args)
	if err == flag.ErrHelp {
		return "", true, nil
	}
	return *envFile, false, err
}

func printHelp(out io.Writer) error {
	help, err := deploysample.Help(sample.NewPageComponent())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, help)
	return err
}

// loadEnv copies the dotenv file into the process environment. Variables
// already set in the environment win.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	return godotenv.Load(path)
}

func newPage(ctx context.Context, source settings.Source) (*sample.Page, error) {
	page := new(sample.Page)
	err := settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: source, Prefix: []string{"deploysample"}},
		sample.NewPageComponent(),
		page,
	)
	return page, err
}

func newFetcher(page *sample.Page) deploysample.Fetcher {
	handler := &sample.Handler{
		Page:   page,
		LogFn:  deploysample.LoggerFromContext,
		StatFn: deploysample.StatFromContext,
	}
	return &deploysample.StaticFetcher{
		Functions: map[string]deploysample.Function{
			sample.FunctionName: sample.NewFunction(handler),
		},
	}
}

func main() {
	envFile, help, err := parseFlags(os.Args[1:])
	if err != nil {
		panic(err.Error())
	}
	if help {
		if err := printHelp(os.Stdout); err != nil {
			panic(err.Error())
		}
		return
	}
	if err := loadEnv(envFile); err != nil {
		panic(err.Error())
	}

	ctx := context.Background()
	source, err := settings.NewEnvSource(os.Environ())
	if err != nil {
		panic(err.Error())
	}
	page, err := newPage(ctx, source)
	if err != nil {
		panic(err.Error())
	}
	if deploysample.TargetFunction == "" {
		deploysample.TargetFunction = sample.FunctionName
	}
	if err := deploysample.Start(ctx, source, newFetcher(page)); err != nil {
		panic(err.Error())
	}
}
