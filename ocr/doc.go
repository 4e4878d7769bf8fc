// 版权所有 2024 OCRFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 ocr 提供统一的文档解析供应商接口与规范化输出结构。

# 概述

不同 OCR 服务商的响应结构各不相同。本包定义一套与供应商无关的
规范化记录（小票、发票、身份证件），每个供应商实现 [Provider]
接口，把自己的原始响应映射到这套结构上。调用方总是同时拿到
原始响应与规范化结果，二者封装在不可变的 [ResultEnvelope] 中。

# 核心类型

  - [Provider]：解析小票、发票、财务单据与身份证件
  - [ResultEnvelope]：原始响应 + 规范化结果，JSON 输出为
    {original_response, standardized_response}
  - [ReceiptRecord] / [InvoiceRecord] / [IdentityRecord]：规范化记录
  - [MindeeProvider]：基于 Mindee API 的实现

# 字段语义

供应商不支持的标量字段输出为 null，不支持的序列字段输出为 []。
数值与日期转换失败时返回 CONVERSION_ERROR，与远端失败
（PROVIDER_ERROR）严格区分。

# 可观测

[Instrument] 为任意 Provider 添加 OpenTelemetry span、Prometheus 指标
与 zap 日志，不改变结果与错误。
*/
package ocr
