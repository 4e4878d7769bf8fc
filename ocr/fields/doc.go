/*
Package fields 提供从 Provider 原始 JSON 中安全取值与类型转换的纯函数。

  - Tree / SafeGet：显式的可选链访问，任意一层缺失都返回缺失节点，从不报错
  - ToNumber：字符串转 int64 / float64，空值返回 nil，非数字返回 CONVERSION_ERROR
  - CombineDateAndTime：合并日期与时间片段，缺少时间按零点处理

“字段缺失”与“字段存在但格式错误”严格区分：前者得到 nil，后者返回错误。
*/
package fields
