// 版权所有 2024 OCRFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的指标采集能力，覆盖 HTTP、
文档解析与缓存三个维度。

# 概述

每个 Collector 持有独立的 prometheus.Registry，通过 promauto.With
注册指标，并由 Handler 暴露给 /metrics。Registry 额外包含 Go 运行时、
进程以及凭证库连接池（RegisterDBStats）指标。

# 主要能力

  - HTTP 指标：请求总数、请求耗时、上传与响应体积，
    按 method/route/status 分组，状态码归类为 2xx/3xx/4xx/5xx。
  - 文档解析指标：按 provider/kind 统计请求数与耗时，
    失败时额外按错误码（PROVIDER_ERROR、CONVERSION_ERROR 等）计数。
  - 缓存指标：原始响应缓存查询次数，按 hit/miss 区分。
*/
package metrics
