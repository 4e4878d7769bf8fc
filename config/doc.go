// Package config 提供 OCRFlow 的配置管理功能。
//
// 配置按 默认值 → .env 文件 → YAML 文件 → 环境变量 的顺序合并。
// YAML 中可以用 ${VAR} 引用环境变量, 未知字段会报错;
// 环境变量统一使用 OCRFLOW_ 前缀, 例如 OCRFLOW_PROVIDERS_MINDEE_API_KEY,
// 切片字段用逗号分隔。Load 只负责合并, 校验由 Validate 完成。
package config
