// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"

	"medha_campus_server/internal/dto/request"
	"medha_campus_server/internal/dto/respond"
	"medha_campus_server/internal/model"
	"medha_campus_server/internal/service/chat"
)

// AuthService 认证业务接口
// 处理注册、登录、登出与会话查询
type AuthService interface {
	// SignUp 注册新账号并建立会话
	SignUp(ctx context.Context, req *request.SignUpRequest) (*respond.AuthRespond, error)
	// SignIn 密码登录并建立会话
	SignIn(ctx context.Context, req *request.SignInRequest) (*respond.AuthRespond, error)
	// SignOut 清除当前会话，重复登出不报错
	SignOut(ctx context.Context) error
	// GetSession 返回当前有效会话，未登录返回 nil
	GetSession(ctx context.Context) (*respond.SessionRespond, error)
	// GetCurrentAccount 返回当前会话对应的账号
	GetCurrentAccount(ctx context.Context) (*model.Account, error)
}

// ComplaintService 投诉业务接口
// 处理工单的提交、查询、状态流转、回复与删除
type ComplaintService interface {
	// SubmitComplaint 提交投诉，归属人取自当前会话
	SubmitComplaint(ctx context.Context, req *request.SubmitComplaintRequest) (*respond.ComplaintRespond, error)
	// GetUserComplaints 返回当前用户自己的投诉
	GetUserComplaints(ctx context.Context) ([]respond.ComplaintRespond, error)
	// GetAllComplaints 返回全部投诉（管理员）
	GetAllComplaints(ctx context.Context) ([]respond.ComplaintRespond, error)
	// GetAllComplaintsPublic 公开看板视图，隐去提交人与附件
	GetAllComplaintsPublic(ctx context.Context) ([]respond.ComplaintRespond, error)
	// GetComplaintById 按 id 查询单条投诉
	GetComplaintById(ctx context.Context, complaintId string) (*respond.ComplaintRespond, error)
	// UpdateComplaintStatus 变更投诉状态（管理员）
	UpdateComplaintStatus(ctx context.Context, req *request.UpdateComplaintStatusRequest) (*respond.ComplaintRespond, error)
	// AddAdminResponse 追加管理员回复，不变更状态
	AddAdminResponse(ctx context.Context, req *request.AddAdminResponseRequest) (*respond.ComplaintRespond, error)
	// DeleteComplaint 删除投诉（管理员）
	DeleteComplaint(ctx context.Context, complaintId string) error
}

// ChatService 聊天业务接口
// 返回事件通道，调用方按序消费直到终止事件
type ChatService interface {
	// StreamChat 发起流式对话
	StreamChat(ctx context.Context, history []model.ChatMessage) (<-chan chat.Event, error)
}
