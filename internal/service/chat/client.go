// Package chat 实现流式聊天客户端
// client.go
// 核心职责：向远端生成式语言 API 发送对话历史并增量回传文本片段
// 1. 未配置 API 密钥时走离线兜底模式（关键词匹配 + 模拟流式）
// 2. 非 2xx 响应按错误类别分类（429 限流 / 402 配额 / 其他）
// 3. 响应体按行式事件流增量解析，片段即到即发，不等待全量
// 4. 网络层异常一律转化为 Error 事件，绝不向调用方抛出
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"medha_campus_server/internal/config"
	"medha_campus_server/internal/model"
	"medha_campus_server/pkg/constants"
	"medha_campus_server/pkg/errorx"
)

// StreamingClient 流式聊天客户端
type StreamingClient struct {
	conf       *config.GeminiConfig
	httpClient *http.Client
}

// NewStreamingClient 创建流式聊天客户端
// 不设显式超时，依赖传入 ctx 和底层传输的默认行为
func NewStreamingClient(conf *config.GeminiConfig) *StreamingClient {
	return &StreamingClient{
		conf:       conf,
		httpClient: &http.Client{},
	}
}

// StreamChat 发送一轮对话并返回事件通道
// history 必须非空且以 user 消息结尾；违反时直接返回参数错误
// 返回的通道上产生零或多个 Delta 事件，随后恰好一个 Done 或 Error
// 事件，之后通道关闭；多次调用相互独立（无排队、无合并）
func (c *StreamingClient) StreamChat(ctx context.Context, history []model.ChatMessage) (<-chan Event, error) {
	if len(history) == 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "conversation history is empty")
	}
	if history[len(history)-1].Role != model.ChatRoleUser {
		return nil, errorx.New(errorx.CodeInvalidParam, "conversation history must end with a user message")
	}

	events := make(chan Event, constants.CHANNEL_SIZE)
	go func() {
		defer close(events)
		if strings.TrimSpace(c.conf.ApiKey) == "" {
			// 无密钥：兜底模式，保持与远端模式完全一致的事件契约
			c.streamFallback(ctx, history[len(history)-1].Content, events)
			return
		}
		c.streamRemote(ctx, history, events)
	}()
	return events, nil
}

// emit 向事件通道发送一个增量事件
// 消费方停止读取时缓冲可能占满，此时以 ctx 取消作为退出信号，
// 返回 false 表示事件被放弃，生产端应立即停止
func emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// emitTerminal 发送终止事件（Done 或 Error）
// 正常情况下阻塞直到消费方接收；调用方已取消时退化为尽力发送，
// 缓冲占满则丢弃，保证生产端 goroutine 一定能退出
func emitTerminal(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
		select {
		case events <- ev:
		default:
		}
	}
}

// ==================== 远端请求编码 ====================

// generatePart 请求中的单个内容片段（文本或内联图片）
type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

// inlineData 内联二进制数据（Base64 文本编码）
type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// generateContent 请求中的一条对话消息
type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

// generationConfig 生成参数
type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

// generateRequest 远端 API 请求体
type generateRequest struct {
	SystemInstruction *generateContent `json:"system_instruction,omitempty"`
	Contents          []generateContent `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

// mapHistory 将对话历史映射到远端 API 的角色词表
// assistant -> "model"，其余保持 "user"
func mapHistory(history []model.ChatMessage) []generateContent {
	contents := make([]generateContent, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == model.ChatRoleAssistant {
			role = "model"
		}
		parts := []generatePart{{Text: msg.Content}}
		if msg.Image != "" {
			mimeType, data := parseImageData(msg.Image)
			parts = append(parts, generatePart{InlineData: &inlineData{
				MimeType: mimeType,
				Data:     data,
			}})
		}
		contents = append(contents, generateContent{Role: role, Parts: parts})
	}
	return contents
}

// parseImageData 解析图片编码
// 支持 data URL（"data:image/png;base64,xxx"）和裸 Base64 两种形式
func parseImageData(image string) (mimeType, data string) {
	mimeType = "image/jpeg"
	data = image
	if !strings.HasPrefix(image, "data:") {
		return
	}
	rest := image[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep == -1 {
		return
	}
	if mt := rest[:sep]; mt != "" {
		mimeType = mt
	}
	data = rest[sep+len(";base64,"):]
	return
}

// ==================== 远端流式处理 ====================

// streamRemote 请求远端 API 并增量转发响应
func (c *StreamingClient) streamRemote(ctx context.Context, history []model.ChatMessage, events chan<- Event) {
	reqBody := generateRequest{
		SystemInstruction: &generateContent{
			Parts: []generatePart{{Text: DefaultSystemPrompt}},
		},
		Contents: mapHistory(history),
		GenerationConfig: &generationConfig{
			MaxOutputTokens: c.conf.MaxOutputTokens,
			Temperature:     c.conf.Temperature,
			TopP:            c.conf.TopP,
			TopK:            c.conf.TopK,
		},
	}
	raw, err := json.Marshal(reqBody)
	if err != nil {
		emitTerminal(ctx, events, Event{Type: EventError, Err: errorx.Wrap(err, errorx.CodeServerBusy, "encode chat request")})
		return
	}

	endpoint := c.conf.BaseURL + "?key=" + url.QueryEscape(c.conf.ApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		emitTerminal(ctx, events, Event{Type: EventError, Err: errorx.Wrap(err, errorx.CodeServerBusy, "build chat request")})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 连接拒绝/DNS 失败/超时等传输层错误，统一转化为用户可读的 Error 事件
		zap.L().Error("chat request failed", zap.Error(err))
		emitTerminal(ctx, events, Event{Type: EventError, Err: errorx.Wrap(err, errorx.CodeServerBusy, "Failed to connect to AI service")})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		emitTerminal(ctx, events, Event{Type: EventError, Err: classifyHTTPError(resp)})
		return
	}

	parser := &sseParser{}
	buf := make([]byte, 4096)
	for !parser.done {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, payload := range parser.feed(buf[:n]) {
				if delta, ok := extractDelta(payload); ok {
					if !emit(ctx, events, Event{Type: EventDelta, Delta: delta}) {
						return
					}
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			zap.L().Error("chat stream read failed", zap.Error(readErr))
			emitTerminal(ctx, events, Event{Type: EventError, Err: errorx.Wrap(readErr, errorx.CodeServerBusy, "Connection to AI service was interrupted")})
			return
		}
	}

	// EOF 后兜底扫描没有行结束符的残留内容
	for _, payload := range parser.flush() {
		if delta, ok := extractDelta(payload); ok {
			if !emit(ctx, events, Event{Type: EventDelta, Delta: delta}) {
				return
			}
		}
	}

	emitTerminal(ctx, events, Event{Type: EventDone})
}

// ==================== 错误分类与负载解码 ====================

// providerErrorBody 远端错误响应体
// error 字段可能是对象（{"message": ...}）也可能是纯字符串
type providerErrorBody struct {
	Error json.RawMessage `json:"error"`
}

// classifyHTTPError 将非 2xx 响应分类为带业务码的错误
// 429 限流、402 配额耗尽单独分类，其余透传远端错误消息
func classifyHTTPError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return errorx.New(errorx.CodeRateLimited, "Rate limit exceeded. Please wait a moment and try again.")
	case http.StatusPaymentRequired:
		return errorx.New(errorx.CodeQuotaExceeded, "AI usage limit reached. Please try again later.")
	}

	msg := fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		if providerMsg := parseProviderError(body); providerMsg != "" {
			msg = providerMsg
		}
	}
	return errorx.New(errorx.CodeServerBusy, msg)
}

// parseProviderError 从错误响应体中提取消息，解析失败返回空串
func parseProviderError(body []byte) string {
	var wrapper providerErrorBody
	if err := json.Unmarshal(body, &wrapper); err != nil || len(wrapper.Error) == 0 {
		return ""
	}
	// 对象形式：{"error": {"message": "..."}}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(wrapper.Error, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	// 字符串形式：{"error": "..."}
	var str string
	if err := json.Unmarshal(wrapper.Error, &str); err == nil {
		return str
	}
	return ""
}

// streamRecord data 负载的类型化结构
// 字段缺失是合法情况（该条记录无增量文本），不是错误
type streamRecord struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// extractDelta 从负载中提取增量文本
// 返回 ok=false 表示该条记录没有文本片段（保活或元信息记录）
func extractDelta(payload string) (string, bool) {
	var rec streamRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return "", false
	}
	if len(rec.Choices) == 0 || rec.Choices[0].Delta.Content == "" {
		return "", false
	}
	return rec.Choices[0].Delta.Content, true
}

// ==================== 兜底模式 ====================

// streamFallback 无密钥时的离线兜底
// 关键词匹配一条预置回答，逐词发送并附带固定间隔，模拟流式输出
// 对调用方而言与远端模式的事件契约完全一致
func (c *StreamingClient) streamFallback(ctx context.Context, lastUserMessage string, events chan<- Event) {
	reply := fallbackReply(lastUserMessage)
	for _, word := range strings.Fields(reply) {
		select {
		case <-ctx.Done():
			// 终止事件同样不能无条件发送，缓冲占满时直接放弃
			emitTerminal(ctx, events, Event{Type: EventError, Err: errorx.Wrap(ctx.Err(), errorx.CodeServerBusy, "chat cancelled")})
			return
		case <-time.After(constants.MOCK_WORD_DELAY):
		}
		if !emit(ctx, events, Event{Type: EventDelta, Delta: word + " "}) {
			return
		}
	}
	emitTerminal(ctx, events, Event{Type: EventDone})
}
