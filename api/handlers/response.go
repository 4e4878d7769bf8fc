package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/types"
)

// Response 是所有 JSON 接口的外层信封. 成功时只有 Data, 失败时只有 Error.
type Response struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	RequestID string     `json:"request_id,omitempty"`
}

// ErrorInfo 是返回给客户端的错误描述, 不包含 Cause.
type ErrorInfo struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Provider string `json:"provider,omitempty"`
	// UpstreamStatus 只在供应商返回错误时填充, 例如 Mindee 的 401.
	UpstreamStatus int  `json:"upstream_status,omitempty"`
	Retryable      bool `json:"retryable,omitempty"`
}

// WriteJSON 先编码再写头. body 无法编码时 (例如含 NaN) 改写 500 INTERNAL_ERROR.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	writeJSON(w, nil, status, body)
}

// WriteSuccess 以 200 写出成功信封.
func WriteSuccess(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, envelope(r, data, nil))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(envelope(r, nil, &ErrorInfo{
			Code:    string(types.ErrInternalError),
			Message: "failed to encode response",
		}))
	}
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

// WriteError 把 err 转成错误信封. 非 *types.Error 一律视为 INTERNAL_ERROR, 原始信息只进日志.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	apiErr, ok := types.AsError(err)
	if !ok {
		apiErr = types.NewError(types.ErrInternalError, "internal server error").WithCause(err)
	}
	status := statusFor(apiErr)

	info := &ErrorInfo{
		Code:      string(apiErr.Code),
		Message:   apiErr.Message,
		Provider:  apiErr.Provider,
		Retryable: apiErr.Retryable,
	}
	if carriesUpstreamStatus(apiErr.Code) {
		info.UpstreamStatus = apiErr.HTTPStatus
	}

	if logger != nil {
		logError(logger, r, apiErr, status)
	}
	writeJSON(w, r, status, envelope(r, nil, info))
}

func envelope(r *http.Request, data any, info *ErrorInfo) Response {
	return Response{
		Success:   info == nil,
		Data:      data,
		Error:     info,
		Timestamp: time.Now(),
		RequestID: requestID(r),
	}
}

// logError 4xx 记 warn, 5xx 记 error.
func logError(logger *zap.Logger, r *http.Request, err *types.Error, status int) {
	fields := make([]zap.Field, 0, 6)
	fields = append(fields,
		zap.String("code", string(err.Code)),
		zap.String("message", err.Message),
		zap.Int("status", status),
		zap.Bool("retryable", err.Retryable),
	)
	if id := requestID(r); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if err.Cause != nil {
		fields = append(fields, zap.Error(err.Cause))
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
		return
	}
	logger.Warn("request rejected", fields...)
}

func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	id, _ := types.RequestID(r.Context())
	return id
}
