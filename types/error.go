package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 是对外暴露的稳定错误码, HTTP 层据此决定状态码.
type ErrorCode string

// Request / transport error codes
const (
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrPayloadTooLarge    ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrUpstreamTimeout    ErrorCode = "UPSTREAM_TIMEOUT"
	ErrUpstreamError      ErrorCode = "UPSTREAM_ERROR"
	ErrInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Normalization error codes
const (
	// ErrProviderError means the remote provider answered and reported a failure.
	ErrProviderError ErrorCode = "PROVIDER_ERROR"
	// ErrConversion means a field was present but could not be coerced.
	ErrConversion ErrorCode = "CONVERSION_ERROR"
	// ErrCredentialMissing means no key material could be resolved for a provider.
	ErrCredentialMissing ErrorCode = "CREDENTIAL_MISSING"
)

// Error 是各层之间传递的错误. HTTPStatus 记录上游返回的状态码, 不是本服务的响应码.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	Provider   string    `json:"provider,omitempty"`
	Cause      error     `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Provider != "" {
		msg = fmt.Sprintf("[%s] %s: %s", e.Code, e.Provider, e.Message)
	}
	if e.HTTPStatus != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.HTTPStatus)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError 返回只带错误码和消息的 Error, 其余字段用 With* 补充.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus 记录上游状态码.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// NewProviderError builds the error raised when a provider response signals failure.
// status is the HTTP status of the response, 0 when unknown.
func NewProviderError(provider, message string, status int) *Error {
	if message == "" && status != 0 {
		message = http.StatusText(status)
	}
	return &Error{
		Code:       ErrProviderError,
		Message:    message,
		HTTPStatus: status,
		Retryable:  status >= http.StatusInternalServerError,
		Provider:   provider,
	}
}

// NewConversionError builds the error raised when a present value cannot be
// converted to the expected kind.
func NewConversionError(kind, raw string, cause error) *Error {
	return &Error{
		Code:    ErrConversion,
		Message: fmt.Sprintf("cannot convert %q to %s", raw, kind),
		Cause:   cause,
	}
}

// NewInvalidRequestError creates an invalid-request error.
func NewInvalidRequestError(message string) *Error {
	return NewError(ErrInvalidRequest, message)
}

// NewUpstreamError wraps a transport failure that happened before any response arrived.
func NewUpstreamError(provider string, cause error) *Error {
	return &Error{
		Code:      ErrUpstreamError,
		Message:   "request to provider failed",
		Retryable: true,
		Provider:  provider,
		Cause:     cause,
	}
}

// AsError extracts *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsErrorCode reports whether err carries the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}

// IsProviderError reports whether err is a remote-reported provider failure.
func IsProviderError(err error) bool {
	return IsErrorCode(err, ErrProviderError)
}

// IsConversionError reports whether err is a value conversion failure.
func IsConversionError(err error) bool {
	return IsErrorCode(err, ErrConversion)
}

// IsRetryable 对非 *Error 返回 false.
func IsRetryable(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Retryable
	}
	return false
}

// GetErrorCode 取错误链上第一个 *Error 的错误码, 没有时返回空串.
func GetErrorCode(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}
