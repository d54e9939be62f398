// Package handler 提供 HTTP 请求处理器
// 本文件处理投诉工单相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"medha_campus_server/internal/dto/request"
	"medha_campus_server/internal/service"
)

// ComplaintHandler 投诉请求处理器
type ComplaintHandler struct {
	svc service.ComplaintService
}

func NewComplaintHandler(svc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{svc: svc}
}

// Submit 提交投诉
// POST /complaint/submit
// 请求体: request.SubmitComplaintRequest
// 响应: respond.ComplaintRespond
func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req request.SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.svc.SubmitComplaint(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetMine 查询当前用户自己的投诉
// GET /complaint/mine
func (h *ComplaintHandler) GetMine(c *gin.Context) {
	rsp, err := h.svc.GetUserComplaints(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetAll 查询全部投诉（管理员）
// GET /complaint/all
func (h *ComplaintHandler) GetAll(c *gin.Context) {
	rsp, err := h.svc.GetAllComplaints(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetPublicBoard 公开看板，不要求登录
// GET /complaint/board
func (h *ComplaintHandler) GetPublicBoard(c *gin.Context) {
	rsp, err := h.svc.GetAllComplaintsPublic(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetById 按 id 查询单条投诉
// GET /complaint/get?complaintId=xxx
func (h *ComplaintHandler) GetById(c *gin.Context) {
	var req request.GetComplaintRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.svc.GetComplaintById(c.Request.Context(), req.ComplaintId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// UpdateStatus 变更投诉状态（管理员）
// POST /complaint/updateStatus
// 请求体: request.UpdateComplaintStatusRequest
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.svc.UpdateComplaintStatus(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// AddResponse 追加管理员回复（管理员）
// POST /complaint/respond
// 请求体: request.AddAdminResponseRequest
func (h *ComplaintHandler) AddResponse(c *gin.Context) {
	var req request.AddAdminResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.svc.AddAdminResponse(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Delete 删除投诉（管理员）
// POST /complaint/delete
// 请求体: request.DeleteComplaintRequest
func (h *ComplaintHandler) Delete(c *gin.Context) {
	var req request.DeleteComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.DeleteComplaint(c.Request.Context(), req.ComplaintId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
