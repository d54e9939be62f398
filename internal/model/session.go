// Package model 定义存储层实体模型
// 本文件定义会话模型：当前登录者的时效性标记
package model

import "time"

// Session 会话模型
// 单槽位存储：任意时刻最多一个当前会话（模拟客户端本地会话语义）
// 过期判定采取惰性驱逐：读取时发现过期即清除并视为不存在
type Session struct {
	// UserId 会话所属账号 Uuid
	UserId string `json:"user_id"`

	// Email 冗余存储的账号邮箱，便于展示
	Email string `json:"email"`

	// ExpiresAt 过期时间，创建后固定为 7 天窗口
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 会话是否已过期
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
