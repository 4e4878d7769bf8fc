package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/types"
)

// maxJSONBodyBytes 只有凭证接口接收 JSON, 1 MB 足够.
const maxJSONBodyBytes = 1 << 20

// DecodeJSONBody 严格解码请求体: 拒绝未知字段与尾随数据. 失败时已写出错误响应.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, logger *zap.Logger) error {
	if r.Body == nil || r.Body == http.NoBody {
		return reject(w, r, types.NewInvalidRequestError("request body is empty"), logger)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return reject(w, r, types.NewError(types.ErrPayloadTooLarge, "request body too large").WithCause(err), logger)
		}
		return reject(w, r, types.NewInvalidRequestError("invalid JSON body").WithCause(err), logger)
	}
	if dec.More() {
		return reject(w, r, types.NewInvalidRequestError("request body must contain a single JSON object"), logger)
	}
	return nil
}

// ValidateContentType 要求 application/json, 允许携带 charset 等参数.
func ValidateContentType(w http.ResponseWriter, r *http.Request, logger *zap.Logger) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		_ = reject(w, r, types.NewInvalidRequestError("Content-Type must be application/json"), logger)
		return false
	}
	return true
}

func reject(w http.ResponseWriter, r *http.Request, err *types.Error, logger *zap.Logger) error {
	WriteError(w, r, err, logger)
	return err
}
