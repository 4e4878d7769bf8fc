package middleware

import "net/http"

// statusRecorder 记录状态码与写出的字节数. 未调用 WriteHeader 时按 200 计.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status != 0 {
		return
	}
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += int64(n)
	return n, err
}

// Status 返回最终状态码. handler 什么都没写时也是 200.
func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Unwrap 让 http.ResponseController 能找到底层 writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
