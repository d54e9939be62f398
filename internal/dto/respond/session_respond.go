package respond

import (
	"time"

	"medha_campus_server/internal/model"
)

// SessionRespond 当前会话响应
type SessionRespond struct {
	UserId    string         `json:"user_id"`
	Email     string         `json:"email"`
	ExpiresAt string         `json:"expires_at"`
	Account   AccountRespond `json:"account"`
}

// NewSessionRespond 由会话和账号模型构造响应
func NewSessionRespond(session *model.Session, account *model.Account) *SessionRespond {
	return &SessionRespond{
		UserId:    session.UserId,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Account:   NewAccountRespond(account),
	}
}
