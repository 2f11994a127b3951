package deploysample

import (
	"context"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// MockingFetcher sources original functions from another Fetcher
// and replaces them with functions of the same signature that return
// zero values.
type MockingFetcher struct {
	Fetcher Fetcher
}

// Fetch calls the underlying Fetcher and mocks the results.
func (f *MockingFetcher) Fetch(ctx context.Context, name string) (Function, error) {
	r, err := f.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return mockFunction(r), nil
}

func mockFunction(f Function) Function {
	// The source already passed validation by the lambda SDK so any
	// return values follow its rules: at most two, and the last one
	// is an error.
	t := reflect.TypeOf(f.Source())
	out := t.NumOut()
	var returnType reflect.Type
	if out == 2 {
		returnType = t.Out(0)
	}
	newFn := reflect.MakeFunc(t, newMockFn(returnType, out > 0))
	return NewFunctionWithErrors(
		newFn.Interface(),
		f.Errors()...,
	)
}

func newMockFn(returnType reflect.Type, returnsError bool) func(args []reflect.Value) []reflect.Value {
	return func(_ []reflect.Value) []reflect.Value {
		res := make([]reflect.Value, 0, 2)
		if returnType != nil {
			res = append(res, reflect.Zero(returnType))
		}
		if returnsError {
			res = append(res, reflect.Zero(errorType))
		}
		return res
	}
}
