// 版权所有 2024 OCRFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 cache 提供基于 Redis 的原始响应缓存。

# 概述

同一份文档以相同参数重复提交给供应商时，可直接复用上一次成功的
原始响应，跳过计费的远端调用。缓存只保存原始字节，规范化结果
每次都重新映射，因此映射逻辑的修正会立即生效。

# 核心类型

  - Redis：Store 的 Redis 实现，启动时 Ping 一次，之后的可用性
    由 /ready 的非关键检查报告。
  - Config：连接参数与默认 TTL。
  - RawResponseCache：实现 ocr.RawCache，命中与未命中通过
    HitRecorder 上报到 Prometheus。

# 错误语义

  - ErrCacheMiss：键不存在，RawResponseCache 将其视为未命中而非错误。
  - ErrClosed：连接已关闭。
*/
package cache
