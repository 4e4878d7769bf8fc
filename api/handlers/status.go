package handlers

import (
	"net/http"

	"github.com/BaSui01/ocrflow/types"
)

// codeStatus 错误码到响应状态码. 未列出的错误码返回 500.
var codeStatus = map[types.ErrorCode]int{
	types.ErrInvalidRequest:  http.StatusBadRequest,
	types.ErrUnauthorized:    http.StatusUnauthorized,
	types.ErrForbidden:       http.StatusForbidden,
	types.ErrNotFound:        http.StatusNotFound,
	types.ErrPayloadTooLarge: http.StatusRequestEntityTooLarge,

	// 供应商故障或无法归一化的响应都算网关错误
	types.ErrProviderError:   http.StatusBadGateway,
	types.ErrConversion:      http.StatusBadGateway,
	types.ErrUpstreamError:   http.StatusBadGateway,
	types.ErrUpstreamTimeout: http.StatusGatewayTimeout,

	types.ErrServiceUnavailable: http.StatusServiceUnavailable,
	types.ErrCredentialMissing:  http.StatusServiceUnavailable,
}

// carriesUpstreamStatus 报告 Error.HTTPStatus 是否是上游返回的状态码.
// 这类状态码放进 upstream_status, 不作为本服务的响应状态.
func carriesUpstreamStatus(code types.ErrorCode) bool {
	switch code {
	case types.ErrProviderError, types.ErrUpstreamError, types.ErrUpstreamTimeout:
		return true
	default:
		return false
	}
}

func statusFor(err *types.Error) int {
	if err.HTTPStatus != 0 && !carriesUpstreamStatus(err.Code) {
		return err.HTTPStatus
	}
	if status, ok := codeStatus[err.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
