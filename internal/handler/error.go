package handler

import "fmt"

const (
	ErrorCodeRequest  = "E101"
	ErrorCodeInternal = "E102"
	ErrorCodeProvider = "E103"
	ErrorCodeNotFound = "E104"
	ErrorCodeUpstream = "E105"
)

type ErrorHandler struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func (e *ErrorHandler) Error() string {
	return fmt.Sprintf("error code: %s, message: %s", e.ErrorCode, e.Message)
}

func newError(code string, err error) error {
	return &ErrorHandler{
		ErrorCode: code,
		Message:   err.Error(),
	}
}

func GetRequestError(err error) error {
	return newError(ErrorCodeRequest, err)
}

func GetInternalError(err error) error {
	return newError(ErrorCodeInternal, err)
}

// GetProviderError is a failure reported by FCM itself.
func GetProviderError(err error) error {
	return newError(ErrorCodeProvider, err)
}

func GetNotFoundError(err error) error {
	return newError(ErrorCodeNotFound, err)
}

// GetUpstreamError is a failure talking to the push backend.
func GetUpstreamError(err error) error {
	return newError(ErrorCodeUpstream, err)
}

// RelayError is the error body of the push backend. Status is always false.
type RelayError struct {
	Status    bool   `json:"status"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("error code: %s, message: %s", e.ErrorCode, e.Message)
}

func newRelayError(code string, err error) *RelayError {
	return &RelayError{
		ErrorCode: code,
		Message:   err.Error(),
	}
}
