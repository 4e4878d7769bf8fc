// Package credentials 解析文档解析供应商的 API 凭据,
// 支持配置文件、数据库以及二者的组合查询.
package credentials
