// Package chat 实现流式聊天客户端
// sse.go
// 核心职责：行式事件流（"data: <json>" 帧）的增量解析
// 1. 字节可以在任意位置被切分（包括多字节字符和 JSON 对象中间）
// 2. 半包恢复：JSON 不完整的行放回缓冲区头部等待后续字节，绝不丢弃
// 3. 空行和 ":" 开头的注释/保活行忽略
// 4. "[DONE]" 哨兵负载标记正常流结束
package chat

import (
	"bytes"
	"encoding/json"
	"strings"
)

var dataPrefix = []byte("data: ")

// doneSentinel 正常结束哨兵
const doneSentinel = "[DONE]"

// sseParser 事件流增量解析器
// 按 '\n' 切行（单字节，不会落在多字节字符中间），缓冲区内
// 未成行的字节原样保留，保证任意切分方式下产出相同的负载序列
type sseParser struct {
	buf  []byte
	done bool
}

// feed 追加一段字节，返回其中新产出的完整 data 负载（按出现顺序）
// 哨兵出现后 done 置位，后续字节不再解析
func (p *sseParser) feed(chunk []byte) []string {
	p.buf = append(p.buf, chunk...)
	var payloads []string
	for !p.done {
		idx := bytes.IndexByte(p.buf, '\n')
		if idx == -1 {
			break
		}
		line := p.buf[:idx]
		rest := p.buf[idx+1:]
		// 兼容 CRLF
		line = bytes.TrimSuffix(line, []byte("\r"))

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == ':' {
			// 保活/注释行
			p.buf = rest
			continue
		}
		if !bytes.HasPrefix(line, dataPrefix) {
			p.buf = rest
			continue
		}

		payload := strings.TrimSpace(string(line[len(dataPrefix):]))
		if payload == doneSentinel {
			p.done = true
			p.buf = rest
			break
		}
		if !json.Valid([]byte(payload)) {
			// 半包：该行被块边界截断，放回缓冲区头部等待更多数据
			restored := make([]byte, 0, len(line)+1+len(rest))
			restored = append(restored, line...)
			restored = append(restored, '\n')
			restored = append(restored, rest...)
			p.buf = restored
			break
		}
		payloads = append(payloads, payload)
		p.buf = rest
	}
	return payloads
}

// flush 流结束（EOF）后对缓冲区残留内容做尽力而为的逐行扫描
// 残留中真正畸形的尾部片段静默丢弃，不作为错误上报
func (p *sseParser) flush() []string {
	var payloads []string
	if p.done || len(bytes.TrimSpace(p.buf)) == 0 {
		p.buf = nil
		return payloads
	}
	for _, raw := range bytes.Split(p.buf, []byte("\n")) {
		line := bytes.TrimSuffix(raw, []byte("\r"))
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == ':' {
			continue
		}
		if !bytes.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := strings.TrimSpace(string(line[len(dataPrefix):]))
		if payload == doneSentinel {
			continue
		}
		if !json.Valid([]byte(payload)) {
			continue
		}
		payloads = append(payloads, payload)
	}
	p.buf = nil
	return payloads
}
