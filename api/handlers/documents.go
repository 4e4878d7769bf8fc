package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/api"
	"github.com/BaSui01/ocrflow/ocr"
	"github.com/BaSui01/ocrflow/types"
)

// =============================================================================
// 📄 文档解析 Handler
// =============================================================================

// ProviderResolver 为每次请求给出当前可用的解析供应商.
// 每次请求重新解析, 数据库中的凭证轮换后无需重启.
type ProviderResolver interface {
	Name() string
	Resolve(ctx context.Context) (ocr.Provider, error)
}

// DocumentHandler 处理文档上传与解析.
type DocumentHandler struct {
	resolver       ProviderResolver
	maxUploadBytes int64
	logger         *zap.Logger
}

const (
	uploadField      = "file"
	maxMultipartMem  = 8 << 20
	defaultUploadMax = 20 << 20
)

// NewDocumentHandler 创建 DocumentHandler. maxUploadBytes <= 0 时使用 20 MB.
func NewDocumentHandler(resolver ProviderResolver, maxUploadBytes int64, logger *zap.Logger) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultUploadMax
	}
	return &DocumentHandler{
		resolver:       resolver,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(zap.String("component", "documents")),
	}
}

// Routes 挂载到 /api/v1/documents.
func (h *DocumentHandler) Routes(r chi.Router) {
	r.Get("/kinds", h.HandleKinds)
	r.Post("/{kind}", h.HandleParse)
}

// HandleKinds 处理 GET /api/v1/documents/kinds
// @Summary 支持的文档类型
// @Tags 文档
// @Produce json
// @Success 200 {object} api.KindsResponse "文档类型"
// @Router /api/v1/documents/kinds [get]
func (h *DocumentHandler) HandleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := ocr.Kinds()
	resp := api.KindsResponse{
		Provider: h.resolver.Name(),
		Kinds:    make([]string, 0, len(kinds)),
	}
	for _, k := range kinds {
		resp.Kinds = append(resp.Kinds, string(k))
	}
	WriteSuccess(w, r, resp)
}

// HandleParse 处理 POST /api/v1/documents/{kind}
// @Summary 解析文档
// @Description 上传文档 (multipart 字段 file), 返回供应商原始响应与规范化结果
// @Tags 文档
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "receipt | invoice | identity | financial"
// @Param language query string false "语言区域提示, 如 fr-FR"
// @Param file formData file true "文档"
// @Success 200 {object} api.DocumentResponse "解析结果"
// @Failure 400 {object} api.ErrorResponse "请求无效"
// @Failure 413 {object} api.ErrorResponse "文档过大"
// @Failure 502 {object} api.ErrorResponse "供应商错误或转换错误"
// @Failure 504 {object} api.ErrorResponse "供应商超时"
// @Router /api/v1/documents/{kind} [post]
func (h *DocumentHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	kind, err := ocr.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		WriteError(w, r, types.NewInvalidRequestError(err.Error()), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
		WriteError(w, r, h.uploadError(err), h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		WriteError(w, r, types.NewInvalidRequestError("missing multipart field \""+uploadField+"\"").WithCause(err), h.logger)
		return
	}
	defer file.Close()

	provider, err := h.resolver.Resolve(r.Context())
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		language = r.FormValue("language")
	}

	uploadID := uuid.NewString()
	w.Header().Set("X-Upload-ID", uploadID)
	h.logger.Debug("document received",
		zap.String("upload_id", uploadID),
		zap.String("kind", string(kind)),
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)

	env, err := ocr.Parse(r.Context(), provider, kind, &ocr.Document{Name: filename(header.Filename), Body: file}, language)
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}

	WriteSuccess(w, r, api.DocumentResponse{
		OriginalResponse:     env.OriginalResponse(),
		StandardizedResponse: env.StandardizedAny(),
	})
}

func (h *DocumentHandler) uploadError(err error) *types.Error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return types.NewError(types.ErrPayloadTooLarge, "document exceeds upload limit").WithCause(err)
	}
	return types.NewInvalidRequestError("invalid multipart body").WithCause(err)
}

func filename(name string) string {
	if name == "" {
		return "document"
	}
	return name
}
