package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/BaSui01/ocrflow/types"
)

// RequestIDHeader 请求与响应共用的头.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID 透传客户端提供的 ID, 不合法或缺失时生成 UUID. ID 写入响应头与 context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !acceptableID(id) {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(types.WithRequestID(r.Context(), id)))
		})
	}
}

// acceptableID 只接受字母数字与 . _ - , ID 会原样进入日志与响应头.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
