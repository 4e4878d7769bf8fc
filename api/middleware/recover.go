package middleware

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/api/handlers"
	"github.com/BaSui01/ocrflow/types"
)

// Recoverer 把 panic 转成 500. http.ErrAbortHandler 继续向上抛, 由 net/http 中断连接.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logger.Error("handler panicked",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				handlers.WriteError(w, r, types.NewError(types.ErrInternalError, "internal server error"), nil)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
