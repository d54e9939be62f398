package request

// GetComplaintRequest 按 id 查询投诉（查询参数）
type GetComplaintRequest struct {
	ComplaintId string `form:"complaintId" binding:"required"`
}
