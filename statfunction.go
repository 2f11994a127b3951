package deploysample

import (
	"context"
	"time"

	"github.com/rs/xstats"
)

const (
	statInvocation         = "deploysample.invocation"
	statInvocationDuration = "deploysample.invocation.duration"
)

type statFunction struct {
	Function
	Name string
	Stat Stat
}

// Invoke installs the runtime stat client and records one count and one
// timing per invocation.
func (f *statFunction) Invoke(ctx context.Context, b []byte) ([]byte, error) {
	ctx = xstats.NewContext(ctx, f.Stat)
	start := time.Now()
	res, err := f.Function.Invoke(ctx, b)
	result := "success"
	if err != nil {
		result = "error"
	}
	tags := []string{"function:" + f.Name, "result:" + result}
	f.Stat.Count(statInvocation, 1, tags...)
	f.Stat.Timing(statInvocationDuration, time.Since(start), tags...)
	return res, err
}

// statFetcher wraps the function in a decorator that injects a stat client.
type statFetcher struct {
	Stat    Stat
	Fetcher Fetcher
}

// Fetch calls the underlying Fetcher and adds stat client injection.
func (f *statFetcher) Fetch(ctx context.Context, name string) (Function, error) {
	r, err := f.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return &statFunction{Name: name, Stat: f.Stat, Function: r}, nil
}
