// Package deploysample hosts the deployment sample Lambda function.
//
// The same binary can run the function natively under the AWS Lambda SDK
// or as an HTTP service that implements the Lambda Invoke API. The HTTP
// mode exists so that a deployed build can be exercised locally and in CI
// using the exact request and response shapes Lambda would use. Mock modes
// replace every function with one that returns zero values which is useful
// when testing the service that calls the function rather than the
// function itself.
package deploysample
