package request

// AddAdminResponseRequest 追加管理员回复请求（不变更状态）
type AddAdminResponseRequest struct {
	ComplaintId   string `json:"complaint_id" binding:"required"`
	AdminResponse string `json:"admin_response" binding:"required"`
}
