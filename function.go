package deploysample

import (
	"github.com/aws/aws-lambda-go/lambda"
)

// LambdaFunction wraps a lambda.Handler and keeps the Go function it was
// built from. The mocking fetcher needs the original signature to build a
// replacement with the same input and output types.
type LambdaFunction struct {
	lambda.Handler
	source interface{}
	errors []error
}

// Source returns the original function signature.
func (f *LambdaFunction) Source() interface{} {
	return f.source
}

// Errors returns the errors documented for the function. It is empty
// unless the function was built with NewFunctionWithErrors.
func (f *LambdaFunction) Errors() []error {
	return f.errors
}

// NewFunctionWithErrors documents the errors a function may return. In
// the mock build modes these can be triggered on demand through the
// Error invocation type.
func NewFunctionWithErrors(v interface{}, errors ...error) Function {
	return &LambdaFunction{
		Handler: lambda.NewHandler(v),
		source:  v,
		errors:  errors,
	}
}

// NewFunction is a replacement for lambda.NewHandler that returns
// a Function.
func NewFunction(v interface{}) Function {
	return NewFunctionWithErrors(v)
}
