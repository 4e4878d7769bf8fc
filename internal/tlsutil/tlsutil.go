package tlsutil

import (
	"crypto/tls"
	"net/http"
	"slices"
	"strings"
	"time"
)

// Options 出站客户端参数. 零值即可用.
type Options struct {
	// Timeout 限制整个请求, 包括读取响应体. 0 表示不限.
	Timeout time.Duration
	// ResponseHeaderTimeout 上传结束后等待响应头的时间. 0 表示不限.
	ResponseHeaderTimeout time.Duration
	// MaxIdleConnsPerHost 每个供应商主机保留的空闲连接数, 默认 16.
	MaxIdleConnsPerHost int
}

const defaultIdlePerHost = 16

// Config 返回 TLS 1.2+ 配置. TLS 1.2 只协商带前向保密的 AEAD 套件, TLS 1.3 套件由运行时决定.
func Config() *tls.Config {
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		CipherSuites: aeadSuites(),
	}
}

// aeadSuites 从运行时支持的安全套件中挑出 ECDHE + GCM/ChaCha20.
func aeadSuites() []uint16 {
	var ids []uint16
	for _, s := range tls.CipherSuites() {
		if !slices.Contains(s.SupportedVersions, tls.VersionTLS12) {
			continue
		}
		if !strings.HasPrefix(s.Name, "TLS_ECDHE_") {
			continue
		}
		if strings.Contains(s.Name, "_GCM_") || strings.Contains(s.Name, "CHACHA20_POLY1305") {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// NewTransport 基于 http.DefaultTransport 的副本, 保留代理与拨号设置, 替换 TLS 配置.
func NewTransport(opts Options) *http.Transport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = Config()
	tr.ResponseHeaderTimeout = opts.ResponseHeaderTimeout
	tr.MaxIdleConnsPerHost = opts.MaxIdleConnsPerHost
	if tr.MaxIdleConnsPerHost <= 0 {
		tr.MaxIdleConnsPerHost = defaultIdlePerHost
	}
	return tr
}

// NewClient 返回调用供应商 API 的 http.Client.
func NewClient(opts Options) *http.Client {
	return &http.Client{Timeout: opts.Timeout, Transport: NewTransport(opts)}
}
