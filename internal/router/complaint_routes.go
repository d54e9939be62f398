// Package router 提供 HTTP 路由注册
// 本文件定义投诉工单相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"medha_campus_server/internal/infrastructure/middleware"
)

// RegisterComplaintRoutes 注册投诉相关路由
// 公开看板不要求登录，其余接口要求携带 Access Token
// 管理员权限在 Service 层按当前会话重新判定
func (rt *Router) RegisterComplaintRoutes(r *gin.Engine) {
	// 公开接口（无需认证）
	r.GET("/complaint/board", rt.handlers.Complaint.GetPublicBoard)

	// 需要认证的接口
	complaintGroup := r.Group("/complaint")
	complaintGroup.Use(middleware.JWTAuth())
	{
		complaintGroup.POST("/submit", rt.handlers.Complaint.Submit)
		complaintGroup.GET("/mine", rt.handlers.Complaint.GetMine)
		complaintGroup.GET("/all", rt.handlers.Complaint.GetAll)
		complaintGroup.GET("/get", rt.handlers.Complaint.GetById)
		complaintGroup.POST("/updateStatus", rt.handlers.Complaint.UpdateStatus)
		complaintGroup.POST("/respond", rt.handlers.Complaint.AddResponse)
		complaintGroup.POST("/delete", rt.handlers.Complaint.Delete)
	}
}
