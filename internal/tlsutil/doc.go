// Copyright (c) OCRFlow Authors.
// Licensed under the MIT License.

// Package tlsutil 构造调用文档解析供应商的出站 HTTP 客户端:
// TLS 1.2 起步, TLS 1.2 下只允许 ECDHE + AEAD 套件, 连接池按单个供应商主机调整.
package tlsutil
