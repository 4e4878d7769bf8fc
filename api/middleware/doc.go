// Copyright (c) OCRFlow Authors.
// Licensed under the MIT License.

/*
Package middleware 提供 ocrflow HTTP 服务的中间件.

每个中间件都是 func(http.Handler) http.Handler, 可直接交给 chi 的 Use.
推荐顺序 (外层在前):

	Recoverer → RequestID → Observe → SecureHeaders → CORS → Authenticator

Observe 合并了链路追踪, 指标与访问日志, 三者共用同一个状态码记录器,
并在路由完成后使用 chi 的路由模板作为 route 标签.
*/
package middleware
