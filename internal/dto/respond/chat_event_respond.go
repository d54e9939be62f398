package respond

// ChatEventRespond 聊天流式事件帧
// Type 取值："delta"（增量文本）、"done"（正常结束）、"error"（本轮失败）
// 一次请求产生零或多个 delta 帧，随后恰好一个 done 或 error 帧
type ChatEventRespond struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"` // delta 帧的文本片段
	Message string `json:"message,omitempty"` // error 帧的用户可读原因
}
