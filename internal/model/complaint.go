// Package model 定义存储层实体模型
// 本文件定义投诉工单模型及其状态机
package model

import "time"

// 投诉状态
// 状态机：open -> in_progress -> {resolved, closed}
// resolved 与 closed 之间可由管理员直接互转；resolved_at 只盖章一次
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// 投诉优先级
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Complaint 投诉工单模型
// 整体序列化后存入 KV 存储的 complaints 命名空间
type Complaint struct {
	// Uuid 工单唯一标识
	// 格式：C + 时间戳随机字符串
	Uuid string `json:"id"`

	// UserId 提交人账号 Uuid
	// 始终取自会话，不信任调用方传入的值
	UserId string `json:"user_id"`

	// Category 分类，如 "infrastructure"、"academic"
	Category string `json:"category"`

	// Title 标题
	Title string `json:"title"`

	// Description 详细描述
	Description string `json:"description"`

	// Status 当前状态，初始恒为 open
	Status string `json:"status"`

	// Priority 优先级，未指定时默认 medium
	Priority string `json:"priority"`

	// AttachmentData 附件内容（Base64 编码，可选）
	AttachmentData string `json:"attachment_data,omitempty"`

	// AttachmentName 附件文件名（可选）
	AttachmentName string `json:"attachment_name,omitempty"`

	// AdminResponse 管理员回复（可选）
	AdminResponse string `json:"admin_response,omitempty"`

	// ResolvedAt 首次进入 resolved/closed 的时间，只写一次
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// CreatedAt 创建时间
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt 最近一次变更时间，每次变更刷新
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus 校验状态取值是否合法
func ValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ValidPriority 校验优先级取值是否合法
func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Terminal 状态是否为终态（resolved/closed）
func Terminal(status string) bool {
	return status == StatusResolved || status == StatusClosed
}
