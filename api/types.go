package api

import (
	"encoding/json"
)

// =============================================================================
// 文档解析类型
// =============================================================================

// DocumentResponse 是解析结果在 Response.Data 中的形态.
// @Description 原始供应商响应与规范化结果
type DocumentResponse struct {
	// 供应商返回的原始 JSON, 原样透传
	OriginalResponse json.RawMessage `json:"original_response" swaggertype:"object"`
	// 规范化结果, 结构由文档类型决定
	StandardizedResponse any `json:"standardized_response"`
}

// KindsResponse 列出支持的文档类型.
// @Description 支持的文档类型
type KindsResponse struct {
	// 当前供应商名称
	Provider string `json:"provider" example:"mindee"`
	// 文档类型
	Kinds []string `json:"kinds" example:"receipt,invoice,identity,financial"`
}

// =============================================================================
// 凭证管理类型
// =============================================================================

// CredentialRequest 写入或轮换供应商凭证.
// @Description 供应商凭证写入请求
type CredentialRequest struct {
	// 供应商 API Key
	APIKey string `json:"api_key" binding:"required"`
	// 可选的供应商基础 URL
	BaseURL string `json:"base_url,omitempty" example:"https://api.mindee.net"`
}

// CredentialResponse 返回脱敏后的凭证.
// @Description 脱敏后的供应商凭证
type CredentialResponse struct {
	Provider string `json:"provider" example:"mindee"`
	APIKey   string `json:"api_key" example:"***abcd"`
	BaseURL  string `json:"base_url,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// =============================================================================
// 错误类型
// =============================================================================

// ErrorResponse 错误响应结构, 用于 API 文档.
// @Description 错误响应
type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
// @Description 错误详情
type ErrorDetail struct {
	// 错误码, 如 PROVIDER_ERROR、CONVERSION_ERROR
	Code string `json:"code" example:"PROVIDER_ERROR"`
	// 错误信息
	Message string `json:"message" example:"Authorization required"`
	// 供应商名称
	Provider string `json:"provider,omitempty" example:"mindee"`
	// 供应商返回的 HTTP 状态码
	UpstreamStatus int `json:"upstream_status,omitempty" example:"401"`
	// 是否可重试
	Retryable bool `json:"retryable,omitempty"`
}
