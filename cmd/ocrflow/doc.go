// Copyright (c) OCRFlow Authors.
// Licensed under the MIT License.

/*
Package main 提供 OCRFlow 服务端与命令行入口。

# 概述

cmd/ocrflow 提供 HTTP API 服务、本地文件批量解析、健康检查和版本查询等子命令。
程序支持 YAML 与 .env 配置加载、结构化日志（zap）、OpenTelemetry 追踪
以及 Prometheus 指标采集。

# 核心类型

  - Server         : 组装缓存、凭证存储与 Mindee 解析器, 管理 API 与 Metrics 双端口
  - mindeeResolver : 每次请求从凭证存储取密钥, 轮换密钥无需重启

# 主要能力

  - 子命令：serve、parse（JSON Lines 输出, 顺序与输入一致）、version、health
  - 中间件链见 api/middleware：Recoverer、RequestID、Observe、SecureHeaders、
    CORS、Authenticator（X-API-Key / Bearer JWT）
  - 优雅关闭：信号监听 → 关闭 HTTP → 关闭 Metrics → 释放缓存与数据库
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置
*/
package main
