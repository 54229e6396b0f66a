// Package errors contains the tagged error kinds surfaced by the orchestrator
// and helpers to classify and render them.
package errors

import (
	"errors"
	"net/http"
)

// Kind tags an error with the stage of the transaction pipeline that failed.
type Kind int

const (
	// KindNone is reported for a nil error.
	KindNone Kind = iota
	// KindConfiguration Session state is missing or invalid (parties, master agreement,
	// compiler or interface description not set up).
	KindConfiguration
	// KindValidation The caller supplied a malformed address, a non-numeric id or left a
	// required field empty.
	KindValidation
	// KindSigning No key is available for the party that has to sign.
	KindSigning
	// KindSubmission The ledger rejected the transaction before inclusion
	// (bad nonce, insufficient funds, malformed call) or failed to answer a query.
	KindSubmission
	// KindReverted The transaction was included but contract execution failed.
	KindReverted
	// KindFinalityTimeout The ledger did not confirm the transaction within the allowed wait.
	KindFinalityTimeout
	// KindDecode The receipt, log or call output did not have the expected shape.
	KindDecode
	// KindUnknownSelector A function or event name is missing from the contract interface.
	KindUnknownSelector
	// KindUnauthorized The operator token is missing or invalid.
	KindUnauthorized
	// KindGeneral The service failed in an unexpected way.
	KindGeneral
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindConfiguration:
		return "ConfigurationError"
	case KindValidation:
		return "ValidationError"
	case KindSigning:
		return "SigningError"
	case KindSubmission:
		return "SubmissionError"
	case KindReverted:
		return "RevertedError"
	case KindFinalityTimeout:
		return "FinalityTimeoutError"
	case KindDecode:
		return "DecodeError"
	case KindUnknownSelector:
		return "UnknownSelectorError"
	case KindUnauthorized:
		return "UnauthorizedError"
	default:
		return "GeneralError"
	}
}

// ServiceError is the single failure type crossing the orchestrator boundary.
// Message is safe to show to the operator; Err carries the detail for logs.
type ServiceError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err == nil {
		return err.Message
	}
	if detail := err.Err.Error(); detail != err.Message {
		return err.Message + ": " + detail
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is checks that provided error is a ServiceError of the desired kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the outermost ServiceError in the chain.
// Errors that are not ServiceErrors are reported as KindGeneral.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindGeneral
}

func newError(kind Kind, err error, message string) error {
	if err == nil {
		err = errors.New(message)
	}
	return &ServiceError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ConfigurationError returns an error of kind KindConfiguration
func ConfigurationError(err error, message string) error {
	return newError(KindConfiguration, err, message)
}

// ValidationError returns an error of kind KindValidation
func ValidationError(err error, message string) error {
	return newError(KindValidation, err, message)
}

// SigningError returns an error of kind KindSigning
func SigningError(err error, message string) error {
	return newError(KindSigning, err, message)
}

// SubmissionError returns an error of kind KindSubmission
func SubmissionError(err error, message string) error {
	return newError(KindSubmission, err, message)
}

// RevertedError returns an error of kind KindReverted
func RevertedError(err error, message string) error {
	return newError(KindReverted, err, message)
}

// FinalityTimeoutError returns an error of kind KindFinalityTimeout
func FinalityTimeoutError(err error, message string) error {
	return newError(KindFinalityTimeout, err, message)
}

// DecodeError returns an error of kind KindDecode
func DecodeError(err error, message string) error {
	return newError(KindDecode, err, message)
}

// UnknownSelectorError returns an error of kind KindUnknownSelector.
// It signals a mismatch between the orchestrator and the deployed contract interface.
func UnknownSelectorError(err error, message string) error {
	return newError(KindUnknownSelector, err, message)
}

// UnauthorizedError returns an error of kind KindUnauthorized
func UnauthorizedError(err error, message string) error {
	return newError(KindUnauthorized, err, message)
}

// GeneralError returns a general service error.
// The message sent to the user is "Internal Server Error"; err is only logged.
func GeneralError(err error) error {
	if err == nil {
		err = errors.New("internal server error")
	}
	return &ServiceError{
		Kind:    KindGeneral,
		Message: "Internal Server Error",
		Err:     err,
	}
}

// StatusCode returns the HTTP status code for the error kind
func (err ServiceError) StatusCode() int {
	switch err.Kind {
	case KindConfiguration:
		return http.StatusPreconditionFailed
	case KindValidation:
		return http.StatusBadRequest
	case KindSigning:
		return http.StatusForbidden
	case KindSubmission:
		return http.StatusBadGateway
	case KindReverted:
		return http.StatusUnprocessableEntity
	case KindFinalityTimeout:
		return http.StatusGatewayTimeout
	case KindDecode:
		return http.StatusBadGateway
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
