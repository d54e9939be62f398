package respond

import (
	"time"

	"medha_campus_server/internal/model"
)

// AccountRespond 账号信息响应
// 不包含密码哈希
type AccountRespond struct {
	Uuid      string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// NewAccountRespond 由账号模型构造响应
func NewAccountRespond(account *model.Account) AccountRespond {
	return AccountRespond{
		Uuid:      account.Uuid,
		Email:     account.Email,
		FullName:  account.FullName,
		Role:      account.Role,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}

// AuthRespond 注册/登录成功响应
// AccessToken 用于后续受保护接口的请求头认证
type AuthRespond struct {
	Account     AccountRespond `json:"account"`
	AccessToken string         `json:"access_token"`
}
