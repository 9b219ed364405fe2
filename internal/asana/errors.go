package asana

import (
	"errors"
	"fmt"
)

const (
	remoteErrorTemplateConstant           = "%s failed with status %d: %s"
	requestErrorTemplateConstant          = "%s request failed: %v"
	responseDecodingErrorTemplateConstant = "%s response decoding failed: %v"
	payloadEncodingErrorTemplateConstant  = "%s payload encoding failed: %v"
	invalidInputErrorTemplateConstant     = "%s: %s"
	accessTokenMissingMessageConstant     = "access token must be provided"
)

// ErrAccessTokenMissing indicates the service was configured without credentials.
var ErrAccessTokenMissing = errors.New(accessTokenMissingMessageConstant)

// OperationName identifies a remote API workflow supported by the service.
type OperationName string

// Supported operations.
const (
	ListProjectTasksOperation      OperationName = "ListProjectTasks"
	UpdateTaskCustomFieldOperation OperationName = "UpdateTaskCustomField"
)

// RemoteError reports a non-success HTTP status returned by the API.
type RemoteError struct {
	Operation  OperationName
	StatusCode int
	Body       string
}

// Error describes the remote failure including the response body.
func (remoteError RemoteError) Error() string {
	return fmt.Sprintf(remoteErrorTemplateConstant, remoteError.Operation, remoteError.StatusCode, remoteError.Body)
}

// RequestError reports a transport failure before a response was received.
type RequestError struct {
	Operation OperationName
	Cause     error
}

// Error describes the transport failure.
func (requestError RequestError) Error() string {
	return fmt.Sprintf(requestErrorTemplateConstant, requestError.Operation, requestError.Cause)
}

// Unwrap exposes the underlying transport error.
func (requestError RequestError) Unwrap() error {
	return requestError.Cause
}

// ResponseDecodingError indicates a response body that is not the expected JSON.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates a request body could not be encoded.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}
