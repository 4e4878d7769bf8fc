// 版权所有 2024 OCRFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 database 打开凭据库连接。支持 postgres、mysql 与纯 Go sqlite，
credentials.DBStore 通过 Pool.DB() 读写 provider_credentials 表。

Open 在返回前做一次 Ping，连不上时直接报错；sqlite 固定为单连接并
默认设置 busy_timeout，避免凭据轮换与读取并发时出现 "database is locked"。
GORM 日志经 gormLogger 转发到 zap，只输出失败与慢查询；找不到凭据
（gorm.ErrRecordNotFound）属于正常回退，不记录。

连接池指标不在本包采集，由 metrics.Collector.RegisterDBStats 导出。
*/
package database
