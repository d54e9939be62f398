package request

// SubmitComplaintRequest 提交投诉请求
// 不包含 user_id：归属人始终取自当前会话，防止伪造
type SubmitComplaintRequest struct {
	Category       string `json:"category" binding:"required"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Priority       string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AttachmentData string `json:"attachment_data"`
	AttachmentName string `json:"attachment_name"`
}
