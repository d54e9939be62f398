package request

// UpdateComplaintStatusRequest 更新投诉状态请求（管理员）
type UpdateComplaintStatusRequest struct {
	ComplaintId   string `json:"complaint_id" binding:"required"`
	Status        string `json:"status" binding:"required,oneof=open in_progress resolved closed"`
	AdminResponse string `json:"admin_response"`
}
