// Package chat 实现流式聊天客户端
// event.go
// 核心职责：定义流式事件的标记联合类型
// 一次 StreamChat 调用产生零或多个 Delta 事件，随后恰好一个终止事件
// （Done 或 Error），之后事件通道关闭
package chat

// EventType 流式事件类型
type EventType int8

const (
	// EventDelta 增量文本片段
	EventDelta EventType = iota
	// EventDone 本轮回复正常结束
	EventDone
	// EventError 本轮回复失败（限流/配额/网络/远端错误）
	EventError
)

// Event 流式事件
// Type 为 EventDelta 时 Delta 有效；为 EventError 时 Err 有效
type Event struct {
	Type  EventType
	Delta string
	Err   error
}
