// Copyright (c) OCRFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供 ocrflow 的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 ocr、credentials、api
等上层模块提供统一的错误契约与 Context 传播工具，以避免循环依赖。

# 核心类型

  - Error / ErrorCode: 结构化错误体系，含 HTTP 状态码、Retryable、Provider 标记
  - PROVIDER_ERROR   : 远端 Provider 明确返回失败（携带原始消息与状态码）
  - CONVERSION_ERROR : 字段存在但无法转换为数字或日期，不会被静默吞成 null
  - UPSTREAM_ERROR   : 尚未拿到响应时的传输失败

# 主要能力

  - Context 传播：WithRequestID / WithTraceID / WithSubject / WithProvider
  - 错误工具链：AsError / IsErrorCode / IsProviderError / IsConversionError / IsRetryable
  - 常用错误构造：NewProviderError / NewConversionError / NewUpstreamError / NewInvalidRequestError
*/
package types
