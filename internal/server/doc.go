// 版权所有 2024 OCRFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 server 管理 serve 命令的 HTTP 监听器。

Group 持有 API 与 /metrics 两个 http.Server。Start 先绑定全部端口，
任何一个失败都会释放已绑定的端口，进程不会只带着一半监听器运行；
Wait 在 ctx 结束或任一监听器异常退出时返回；Shutdown 并发关闭所有
监听器并等待进行中的解析请求完成，超时由调用方的 ctx 决定。

写超时需要大于供应商调用的最长耗时，否则成功的解析结果会在写回
客户端时被截断。
*/
package server
