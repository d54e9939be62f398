package respond

import (
	"time"

	"medha_campus_server/internal/model"
)

// ComplaintRespond 投诉工单响应
type ComplaintRespond struct {
	Uuid           string `json:"id"`
	UserId         string `json:"user_id"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
	AttachmentData string `json:"attachment_data,omitempty"`
	AttachmentName string `json:"attachment_name,omitempty"`
	AdminResponse  string `json:"admin_response,omitempty"`
	ResolvedAt     string `json:"resolved_at,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// NewComplaintRespond 由投诉模型构造响应
func NewComplaintRespond(complaint *model.Complaint) ComplaintRespond {
	rsp := ComplaintRespond{
		Uuid:           complaint.Uuid,
		UserId:         complaint.UserId,
		Category:       complaint.Category,
		Title:          complaint.Title,
		Description:    complaint.Description,
		Status:         complaint.Status,
		Priority:       complaint.Priority,
		AttachmentData: complaint.AttachmentData,
		AttachmentName: complaint.AttachmentName,
		AdminResponse:  complaint.AdminResponse,
		CreatedAt:      complaint.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      complaint.UpdatedAt.Format(time.RFC3339),
	}
	if complaint.ResolvedAt != nil {
		rsp.ResolvedAt = complaint.ResolvedAt.Format(time.RFC3339)
	}
	return rsp
}

// NewComplaintRespondList 由投诉模型切片构造响应切片
func NewComplaintRespondList(complaints []model.Complaint) []ComplaintRespond {
	list := make([]ComplaintRespond, 0, len(complaints))
	for i := range complaints {
		list = append(list, NewComplaintRespond(&complaints[i]))
	}
	return list
}
