package deploysample

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

const (
	invocationTypeHeader          = "X-Amz-Invocation-Type"
	invocationTypeRequestResponse = "RequestResponse"
	invocationTypeEvent           = "Event"
	invocationTypeDryRun          = "DryRun"
	invocationTypeError           = "Error"
	invocationErrorTypeHeader     = "X-Error-Type"
	invocationVersionHeader       = "X-Amz-Executed-Version"
	invocationRequestIDHeader     = "X-Amzn-Requestid"
	invocationErrorHeader         = "X-Amz-Function-Error"
	invocationErrorTypeHandled    = "Handled"
	invocationErrorTypeUnhandled  = "Unhandled"
	invocationFunctionArnFormat   = "arn:aws:lambda:local:000000000000:function:%s"
	invocationExecutedVersion     = "latest"
)

// bgContext detaches a context from the *http.Request lifecycle. The
// request context is canceled when the handler returns, which would also
// cancel any Event invocation still running in the background. Values are
// read from the request context while deadlines and cancellation come
// from the embedded context.
type bgContext struct {
	context.Context
	Values context.Context
}

func (c *bgContext) Value(key interface{}) interface{} {
	return c.Values.Value(key)
}

// lambdaError implements the common Lambda error response
// JSON object that is included as the response body for
// exception cases.
type lambdaError struct {
	Message    string   `json:"errorMessage"`
	Type       string   `json:"errorType"`
	StackTrace []string `json:"stackTrace"`
}

type invokeFailed struct {
	Function  string `logevent:"function"`
	RequestID string `logevent:"aws_request_id"`
	Reason    string `logevent:"reason"`
	Message   string `logevent:"message,default=invoke-failed"`
}

// Invoke implements the API of the same name from the AWS Lambda API.
// https://docs.aws.amazon.com/lambda/latest/dg/API_Invoke.html
//
// Not every feature is supported:
//
//   - The "Tail" option for the LogType header does not cause the
//     response to include partial logs.
//
//   - The "Qualifier" parameter is ignored and the reported execution
//     version is always "latest".
//
// An extra "Error" invocation type is accepted when MockMode is set. The
// X-Error-Type header names one of the function's documented errors by its
// Go type name and that error is returned as if the function produced it.
type Invoke struct {
	LogFn      LogFn
	StatFn     StatFn
	URLParamFn URLParamFn
	Fetcher    Fetcher
	MockMode   bool
}

func (h *Invoke) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fnName := h.URLParamFn(r.Context(), "functionName")
	fn, errFn := h.Fetcher.Fetch(r.Context(), fnName)
	switch errFn.(type) {
	case nil:
	case NotFoundError:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(responseFromError(errFn))
		return
	default:
		h.LogFn(r.Context()).Error(invokeFailed{Function: fnName, Reason: errFn.Error()})
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(responseFromError(errFn))
		return
	}
	fnType := r.Header.Get(invocationTypeHeader)
	if fnType == "" {
		fnType = invocationTypeRequestResponse // This is the default value in AWS.
	}
	b, errRead := io.ReadAll(r.Body)
	if errRead != nil {
		w.WriteHeader(http.StatusBadRequest) // Matches JSON parsing errors for the body
		_ = json.NewEncoder(w).Encode(responseFromError(errRead))
		return
	}
	requestID := uuid.New().String()
	ctx := lambdacontext.NewContext(r.Context(), &lambdacontext.LambdaContext{
		AwsRequestID:       requestID,
		InvokedFunctionArn: fmt.Sprintf(invocationFunctionArnFormat, fnName),
	})
	w.Header().Set(invocationVersionHeader, invocationExecutedVersion)
	w.Header().Set(invocationRequestIDHeader, requestID)
	switch fnType {
	case invocationTypeDryRun:
		w.WriteHeader(http.StatusNoContent)
	case invocationTypeEvent:
		ctx = &bgContext{Context: context.Background(), Values: ctx}
		go func() {
			_, errInvoke := fn.Invoke(ctx, b)
			h.record(ctx, fnName, requestID, errInvoke)
		}()
		w.WriteHeader(http.StatusAccepted)
	case invocationTypeRequestResponse:
		rb, errInvoke := fn.Invoke(ctx, b)
		h.writeResult(ctx, w, fnName, requestID, rb, errInvoke)
	case invocationTypeError:
		if !h.MockMode {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(lambdaError{
				Message:    "InvocationType Error is only available in mock mode",
				Type:       "InvalidParameterValueException",
				StackTrace: errResponseStackTrace,
			})
			return
		}
		errName := r.Header.Get(invocationErrorTypeHeader)
		mockErr := findError(fn.Errors(), errName)
		if mockErr == nil {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(responseFromError(NotFoundError{ID: errName}))
			return
		}
		h.writeResult(ctx, w, fnName, requestID, nil, mockErr)
	default:
		w.WriteHeader(http.StatusBadRequest) // Matches the InvalidParameterValueException code
		_ = json.NewEncoder(w).Encode(lambdaError{
			Message:    fmt.Sprintf("InvocationType %s not valid", fnType),
			Type:       "InvalidParameterValueException",
			StackTrace: errResponseStackTrace,
		})
	}
}

func (h *Invoke) writeResult(ctx context.Context, w http.ResponseWriter, fnName string, requestID string, rb []byte, errInvoke error) {
	statusCode := statusFromError(errInvoke)
	if statusCode > 299 {
		w.Header().Set(invocationErrorHeader, invocationErrorTypeHandled)
	}
	if statusCode > 499 {
		w.Header().Set(invocationErrorHeader, invocationErrorTypeUnhandled)
	}
	h.record(ctx, fnName, requestID, errInvoke)
	if errInvoke != nil {
		rb, _ = json.Marshal(responseFromError(errInvoke))
	}
	w.WriteHeader(statusCode)
	if len(rb) > 0 {
		_, _ = w.Write(rb)
	}
}

// record logs a failed invocation and counts every invocation by result.
func (h *Invoke) record(ctx context.Context, fnName string, requestID string, errInvoke error) {
	result := "success"
	if errInvoke != nil {
		result = "error"
		h.LogFn(ctx).Warn(invokeFailed{Function: fnName, RequestID: requestID, Reason: errInvoke.Error()})
	}
	h.StatFn(ctx).Count(statInvocation, 1, "function:"+fnName, "result:"+result)
}

// findError matches a documented error by the name of its Go type.
func findError(errs []error, name string) error {
	for _, err := range errs {
		if errorTypeName(err) == name {
			return err
		}
	}
	return nil
}

// errResponseStackTrace is used to populate the stackTrace attribute of a Lambda
// error. We don't, currently, extract an actual stack trace so we reuse this
// element each time to avoid recreating an empty slice each time.
var errResponseStackTrace = []string{}

func errorTypeName(err error) string {
	errType := reflect.TypeOf(err)
	if errType.Kind() == reflect.Ptr {
		return errType.Elem().Name()
	}
	return errType.Name()
}

func responseFromError(err error) lambdaError {
	return lambdaError{
		Message:    err.Error(),
		Type:       errorTypeName(err),
		StackTrace: errResponseStackTrace,
	}
}

func statusFromError(err error) int {
	switch err.(type) {
	case nil:
		return http.StatusOK
	case *json.InvalidUTF8Error: // nolint
		return http.StatusBadRequest
	case *json.InvalidUnmarshalError:
		return http.StatusBadRequest
	case *json.UnmarshalFieldError: // nolint
		return http.StatusBadRequest
	case *json.UnmarshalTypeError:
		return http.StatusBadRequest
	case *json.SyntaxError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
