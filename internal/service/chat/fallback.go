// Package chat 实现流式聊天客户端
// fallback.go
// 核心职责：离线兜底的预置回答表
// 关键词表是非承载性的便利实现，可随校园常见问题调整
package chat

import "strings"

// cannedAnswer 一条预置回答及其触发关键词
type cannedAnswer struct {
	keywords []string
	reply    string
}

// cannedAnswers 按顺序匹配，命中即返回
var cannedAnswers = []cannedAnswer{
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! I'm your RGUKT campus assistant. How can I help you today? I can provide information about academics, facilities, campus life, and more.",
	},
	{
		keywords: []string{"hostel", "accommodation"},
		reply:    "RGUKT provides hostel facilities for all students. The hostels are well-maintained with 24/7 security, mess facilities, and study rooms. Each hostel has wardens to help with student welfare.",
	},
	{
		keywords: []string{"library"},
		reply:    "The RGUKT library is a modern facility with a vast collection of books, journals, and digital resources. It's open from 8 AM to 10 PM on weekdays and has dedicated study areas for students.",
	},
	{
		keywords: []string{"exam", "test"},
		reply:    "For exam-related queries, please check the academic calendar on the official RGUKT website or contact your department office. Make sure to keep track of important dates and deadlines.",
	},
	{
		keywords: []string{"fee", "payment"},
		reply:    "For fee payment information, please visit the accounts section or check your student portal. Fee payment deadlines are strictly enforced, so make sure to pay on time.",
	},
}

// fallbackDefaultReply 未命中任何关键词时的默认回答
const fallbackDefaultReply = "Thank you for your question. As a campus assistant, I can help with information about RGUKT academics, facilities, campus life, and administrative procedures. Could you please provide more specific details about what you'd like to know?"

// fallbackReply 按最后一条用户消息选择预置回答
func fallbackReply(userMessage string) string {
	lower := strings.ToLower(userMessage)
	for _, answer := range cannedAnswers {
		for _, keyword := range answer.keywords {
			if strings.Contains(lower, keyword) {
				return answer.reply
			}
		}
	}
	return fallbackDefaultReply
}
