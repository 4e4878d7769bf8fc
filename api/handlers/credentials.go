package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/api"
	"github.com/BaSui01/ocrflow/credentials"
	"github.com/BaSui01/ocrflow/types"
)

// CredentialAdmin 是凭证管理所需的存储能力, credentials.DBStore 实现了它.
type CredentialAdmin interface {
	credentials.Store
	Upsert(ctx context.Context, c credentials.Credential) error
	Disable(ctx context.Context, provider string) error
}

// CredentialHandler 处理供应商凭证的查询、写入与停用. 响应中的密钥始终脱敏.
type CredentialHandler struct {
	store  CredentialAdmin
	logger *zap.Logger
}

// NewCredentialHandler 创建 CredentialHandler
func NewCredentialHandler(store CredentialAdmin, logger *zap.Logger) *CredentialHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialHandler{store: store, logger: logger.With(zap.String("component", "credentials_api"))}
}

// Routes 挂载到 /api/v1/credentials.
func (h *CredentialHandler) Routes(r chi.Router) {
	r.Get("/{provider}", h.HandleGet)
	r.Put("/{provider}", h.HandlePut)
	r.Delete("/{provider}", h.HandleDelete)
}

// HandleGet 处理 GET /api/v1/credentials/{provider}
// @Summary 查询供应商凭证（脱敏）
// @Tags 凭证
// @Produce json
// @Success 200 {object} api.CredentialResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/v1/credentials/{provider} [get]
func (h *CredentialHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}
	c, err := h.store.Resolve(r.Context(), provider)
	if err != nil {
		WriteError(w, r, storeError(err), h.logger)
		return
	}
	WriteSuccess(w, r, api.CredentialResponse{
		Provider: c.Provider,
		APIKey:   credentials.Mask(c.APIKey),
		BaseURL:  c.BaseURL,
		Enabled:  true,
	})
}

// HandlePut 处理 PUT /api/v1/credentials/{provider}
// @Summary 写入或轮换供应商凭证
// @Tags 凭证
// @Accept json
// @Produce json
// @Param request body api.CredentialRequest true "凭证"
// @Success 200 {object} api.CredentialResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /api/v1/credentials/{provider} [put]
func (h *CredentialHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req api.CredentialRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}
	req.APIKey = strings.TrimSpace(req.APIKey)
	if req.APIKey == "" {
		WriteError(w, r, types.NewInvalidRequestError("api_key is required"), h.logger)
		return
	}

	c := credentials.Credential{Provider: provider, APIKey: req.APIKey, BaseURL: strings.TrimSpace(req.BaseURL)}
	if err := h.store.Upsert(r.Context(), c); err != nil {
		WriteError(w, r, storeError(err), h.logger)
		return
	}

	h.logger.Info("credential updated",
		zap.String("provider", provider),
		zap.String("api_key", credentials.Mask(c.APIKey)),
	)
	WriteSuccess(w, r, api.CredentialResponse{
		Provider: provider,
		APIKey:   credentials.Mask(c.APIKey),
		BaseURL:  c.BaseURL,
		Enabled:  true,
	})
}

// HandleDelete 处理 DELETE /api/v1/credentials/{provider}, 停用而不删除.
// @Summary 停用供应商凭证
// @Tags 凭证
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Router /api/v1/credentials/{provider} [delete]
func (h *CredentialHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}
	if err := h.store.Disable(r.Context(), provider); err != nil {
		WriteError(w, r, storeError(err), h.logger)
		return
	}
	h.logger.Info("credential disabled", zap.String("provider", provider))
	w.WriteHeader(http.StatusNoContent)
}

func (h *CredentialHandler) provider(w http.ResponseWriter, r *http.Request) (string, bool) {
	provider := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "provider")))
	if provider == "" || len(provider) > 64 {
		WriteError(w, r, types.NewInvalidRequestError("invalid provider name"), h.logger)
		return "", false
	}
	return provider, true
}

func storeError(err error) *types.Error {
	if errors.Is(err, credentials.ErrNotFound) {
		return types.NewError(types.ErrNotFound, "credential not found").WithCause(err)
	}
	return types.NewError(types.ErrInternalError, "credential store failure").WithCause(err)
}
