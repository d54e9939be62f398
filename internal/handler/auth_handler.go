// Package handler 提供 HTTP 请求处理器
// 本文件处理认证相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"medha_campus_server/internal/dto/request"
	"medha_campus_server/internal/dto/respond"
	"medha_campus_server/internal/service"
)

// AuthHandler 认证请求处理器
type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignUp 注册
// POST /auth/signup
// 请求体: request.SignUpRequest
// 响应: respond.AuthRespond
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req request.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.svc.SignUp(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// SignIn 登录
// POST /auth/signin
// 请求体: request.SignInRequest
// 响应: respond.AuthRespond
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req request.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.svc.SignIn(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// SignOut 登出
// POST /auth/signout
// 重复登出同样返回成功
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.svc.SignOut(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetCurrentUser 查询当前登录账号
// GET /auth/me
// 未登录返回未认证错误
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	account, err := h.svc.GetCurrentAccount(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp := respond.NewAccountRespond(account)
	HandleSuccess(c, rsp)
}

// GetSession 查询当前会话
// GET /auth/session
// 未登录或已过期时 data 为 null
func (h *AuthHandler) GetSession(c *gin.Context) {
	rsp, err := h.svc.GetSession(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	if rsp == nil {
		HandleSuccess(c, nil)
		return
	}
	HandleSuccess(c, rsp)
}
