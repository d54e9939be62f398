package request

// DeleteComplaintRequest 删除投诉请求（管理员）
type DeleteComplaintRequest struct {
	ComplaintId string `json:"complaint_id" binding:"required"`
}
