package deploysample

import (
	"context"
)

// StaticFetcher resolves functions from a fixed map built into the
// binary. Every function runs in-process and shares the runtime's
// resources. Adding, removing or updating a function means building and
// deploying a new binary, which is how a deployment sample is meant to
// be versioned anyway.
type StaticFetcher struct {
	// Functions maps function names, as used in the Invoke API path or
	// the TargetFunction value, to executable functions.
	Functions map[string]Function
}

// Fetch resolves the name using the internal mapping.
func (f *StaticFetcher) Fetch(ctx context.Context, name string) (Function, error) {
	h, ok := f.Functions[name]
	if !ok {
		return nil, NotFoundError{ID: name}
	}
	return h, nil
}
