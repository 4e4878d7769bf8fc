// Copyright (c) OCRFlow Authors.
// Licensed under the MIT License.

/*
Package handlers 提供 OCRFlow HTTP API 的请求处理器实现。

# 概述

handlers 包实现文档解析、凭证管理与健康检查端点，以及统一的响应/错误处理。
所有 Handler 均遵循标准 net/http 接口，路由通过 chi 挂载。

# 核心类型

  - DocumentHandler  : 上传文档并返回原始响应与规范化结果
  - CredentialHandler: 供应商凭证写入、轮换与停用
  - HealthHandler    : 服务健康检查（/health, /healthz, /ready, /version）
  - Response         : 统一 JSON 响应结构（success + data + error + timestamp）
  - ErrorInfo        : 结构化错误信息，含 code、message、retryable 标记

# 错误映射

PROVIDER_ERROR、CONVERSION_ERROR、UPSTREAM_ERROR 映射为 502，UPSTREAM_TIMEOUT
映射为 504。供应商返回的 HTTP 状态码放在 error.upstream_status 中，
不会作为本服务的响应状态码。
*/
package handlers
