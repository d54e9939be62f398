// Package websocket 实现聊天流式输出的 WebSocket 网关
// chat_gateway.go
// 核心职责：将事件通道逐帧转发给前端
// 每收到一条流式请求，按序写出零或多个 delta 帧和恰好一个终止帧
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"medha_campus_server/internal/dto/request"
	"medha_campus_server/internal/dto/respond"
	"medha_campus_server/internal/model"
	"medha_campus_server/internal/service"
	"medha_campus_server/internal/service/chat"
	"medha_campus_server/pkg/errorx"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// CORS 已在 HTTP 层处理
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatGateway 聊天流式网关
type ChatGateway struct {
	svc service.ChatService
}

func NewChatGateway(svc service.ChatService) *ChatGateway {
	return &ChatGateway{svc: svc}
}

// Serve 将 HTTP 连接升级为 WebSocket 并处理流式对话
// 同一连接上的多轮请求串行处理，连接断开即终止
func (g *ChatGateway) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	zap.L().Info("chat websocket connected", zap.String("remote", conn.RemoteAddr().String()))

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Error("chat websocket read failed", zap.Error(err))
			}
			return
		}

		var req request.ChatStreamRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			if writeErr := g.writeFrame(conn, respond.ChatEventRespond{
				Type:    "error",
				Message: "Malformed chat request",
			}); writeErr != nil {
				return
			}
			continue
		}

		if err := g.streamOne(c, conn, req.Messages); err != nil {
			return
		}
	}
}

// streamOne 处理一轮对话，返回非 nil 表示连接已不可用
// 中途写失败时取消生产端并排空通道，保证生产 goroutine 不会
// 阻塞在通道发送上
func (g *ChatGateway) streamOne(c *gin.Context, conn *websocket.Conn, messages []model.ChatMessage) error {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, err := g.svc.StreamChat(ctx, messages)
	if err != nil {
		return g.writeFrame(conn, errorFrame(err))
	}
	for event := range events {
		var frame respond.ChatEventRespond
		switch event.Type {
		case chat.EventDelta:
			frame = respond.ChatEventRespond{Type: "delta", Content: event.Delta}
		case chat.EventDone:
			frame = respond.ChatEventRespond{Type: "done"}
		case chat.EventError:
			frame = errorFrame(event.Err)
		}
		if err := g.writeFrame(conn, frame); err != nil {
			cancel()
			for range events {
			}
			return err
		}
	}
	return nil
}

// writeFrame 序列化并写出一帧
func (g *ChatGateway) writeFrame(conn *websocket.Conn, frame respond.ChatEventRespond) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		zap.L().Error("failed to marshal chat frame", zap.Error(err))
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		zap.L().Error("chat websocket write failed", zap.Error(err))
		return err
	}
	return nil
}

// errorFrame 将错误转换为用户可读的 error 帧
// 业务错误透出自身消息，系统错误统一为服务繁忙
func errorFrame(err error) respond.ChatEventRespond {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		return respond.ChatEventRespond{Type: "error", Message: codeErr.Msg}
	}
	return respond.ChatEventRespond{Type: "error", Message: errorx.ErrServerBusy.Msg}
}
