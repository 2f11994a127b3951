package sample

import (
	"context"

	"github.com/asecurityteam/deploysample"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// FunctionName is the name the function is registered under.
const FunctionName = "page"

const statPageServed = "deploysample.page.served"

type pageServed struct {
	RequestID string `logevent:"aws_request_id"`
	Version   string `logevent:"version"`
	Message   string `logevent:"message,default=page-served"`
}

// Handler serves a Page.
type Handler struct {
	Page   *Page
	LogFn  deploysample.LogFn
	StatFn deploysample.StatFn
}

// Handle returns the page. The event payload is never read and the
// result does not depend on the context, so it cannot fail.
func (h *Handler) Handle(ctx context.Context) (Response, error) {
	var requestID string
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	h.LogFn(ctx).Info(pageServed{RequestID: requestID, Version: h.Page.Version()})
	h.StatFn(ctx).Count(statPageServed, 1, "version:"+h.Page.Version())
	return h.Page.Response(), nil
}

// NewFunction wraps the handler for registration with a Fetcher.
func NewFunction(h *Handler) deploysample.Function {
	return deploysample.NewFunction(h.Handle)
}
