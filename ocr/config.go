package ocr

import "time"

// MindeeConfig 配置 Mindee 文档解析供应商. 每个 Provider 实例持有自己的副本.
type MindeeConfig struct {
	APIKey           string        `json:"api_key" yaml:"api_key"`
	BaseURL          string        `json:"base_url" yaml:"base_url"`
	Timeout          time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxDocumentBytes int64         `json:"max_document_bytes,omitempty" yaml:"max_document_bytes,omitempty"`
	CacheTTL         time.Duration `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`
}

// DefaultMindeeConfig 返回默认 Mindee 配置.
func DefaultMindeeConfig() MindeeConfig {
	return MindeeConfig{
		BaseURL:          "https://api.mindee.net",
		Timeout:          60 * time.Second,
		MaxDocumentBytes: 20 << 20,
		CacheTTL:         24 * time.Hour,
	}
}
