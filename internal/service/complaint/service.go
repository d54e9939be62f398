// Package complaint 实现投诉工单的业务逻辑
// service.go
// 核心职责：提交、查询、状态流转、回复与删除
// 每次调用都重新从会话槽取当前账号做权限判定，不缓存身份
package complaint

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"medha_campus_server/internal/dao/mockdata"
	"medha_campus_server/internal/dto/request"
	"medha_campus_server/internal/dto/respond"
	"medha_campus_server/internal/infrastructure/mq"
	"medha_campus_server/internal/model"
	"medha_campus_server/pkg/constants"
	"medha_campus_server/pkg/errorx"
	"medha_campus_server/pkg/util/snowflake"
)

// Service 投诉服务
type Service struct {
	store     *mockdata.Store
	publisher mq.EventPublisher
}

func NewService(store *mockdata.Store, publisher mq.EventPublisher) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
	}
}

// currentAccount 取当前会话账号，未登录返回未认证错误
func (s *Service) currentAccount(ctx context.Context) (*model.Account, error) {
	account, err := s.store.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errorx.ErrUnauthenticated
	}
	return account, nil
}

// publishEvent 尽力而为地发布生命周期事件
func (s *Service) publishEvent(eventType string, complaintId string, actorId string, status string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(mq.ComplaintEvent{
		EventId:     snowflake.GenerateIDString(),
		Type:        eventType,
		ComplaintId: complaintId,
		ActorId:     actorId,
		Status:      status,
		CreatedAt:   time.Now(),
	})
}

// SubmitComplaint 提交投诉，归属人取自当前会话
// 初始状态恒为 open，未指定优先级时默认 medium
func (s *Service) SubmitComplaint(ctx context.Context, req *request.SubmitComplaintRequest) (*respond.ComplaintRespond, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "invalid priority: %s", priority)
	}
	if len(req.AttachmentData) > constants.ATTACHMENT_MAX_SIZE {
		return nil, errorx.New(errorx.CodeInvalidParam, "Attachment is too large")
	}
	complaint := &model.Complaint{
		UserId:         account.Uuid,
		Category:       req.Category,
		Title:          req.Title,
		Description:    req.Description,
		Status:         model.StatusOpen,
		Priority:       priority,
		AttachmentData: req.AttachmentData,
		AttachmentName: req.AttachmentName,
	}
	if err := s.store.CreateComplaint(ctx, complaint); err != nil {
		return nil, err
	}
	zap.L().Info("complaint submitted",
		zap.String("complaint_id", complaint.Uuid),
		zap.String("user_id", account.Uuid),
		zap.String("category", complaint.Category))
	s.publishEvent(mq.EventComplaintSubmitted, complaint.Uuid, account.Uuid, complaint.Status)

	rsp := respond.NewComplaintRespond(complaint)
	return &rsp, nil
}

// GetUserComplaints 返回当前用户自己的投诉，按创建时间倒序
func (s *Service) GetUserComplaints(ctx context.Context) ([]respond.ComplaintRespond, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]model.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c.UserId == account.Uuid {
			owned = append(owned, c)
		}
	}
	sortByCreatedAtDesc(owned)
	return respond.NewComplaintRespondList(owned), nil
}

// GetAllComplaints 返回全部投诉，仅管理员可用，按创建时间倒序
func (s *Service) GetAllComplaints(ctx context.Context) ([]respond.ComplaintRespond, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() {
		return nil, errorx.ErrUnauthorized
	}
	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	sortByCreatedAtDesc(complaints)
	return respond.NewComplaintRespondList(complaints), nil
}

// GetAllComplaintsPublic 公开看板视图，不要求登录
// 隐去提交人与附件内容，只保留可公示字段
func (s *Service) GetAllComplaintsPublic(ctx context.Context) ([]respond.ComplaintRespond, error) {
	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	sortByCreatedAtDesc(complaints)
	list := respond.NewComplaintRespondList(complaints)
	for i := range list {
		list[i].UserId = ""
		list[i].AttachmentData = ""
		list[i].AttachmentName = ""
	}
	return list, nil
}

// GetComplaintById 按 id 查询单条投诉
// 学生只能查自己的，管理员可查任意
func (s *Service) GetComplaintById(ctx context.Context, complaintId string) (*respond.ComplaintRespond, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	complaint, err := s.store.FindComplaintByUuid(ctx, complaintId)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() && complaint.UserId != account.Uuid {
		return nil, errorx.ErrUnauthorized
	}
	rsp := respond.NewComplaintRespond(complaint)
	return &rsp, nil
}

// UpdateComplaintStatus 管理员变更投诉状态
// 首次进入 resolved/closed 时盖章 resolved_at，之后不再改写
func (s *Service) UpdateComplaintStatus(ctx context.Context, req *request.UpdateComplaintStatusRequest) (*respond.ComplaintRespond, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() {
		return nil, errorx.ErrUnauthorized
	}
	if !model.ValidStatus(req.Status) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "invalid status: %s", req.Status)
	}
	updated, err := s.store.UpdateComplaint(ctx, req.ComplaintId, func(c *model.Complaint) {
		c.Status = req.Status
		if req.AdminResponse != "" {
			c.AdminResponse = req.AdminResponse
		}
		if model.Terminal(req.Status) && c.ResolvedAt == nil {
			now := time.Now()
			c.ResolvedAt = &now
		}
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("complaint status updated",
		zap.String("complaint_id", updated.Uuid),
		zap.String("status", updated.Status),
		zap.String("admin_id", account.Uuid))
	s.publishEvent(mq.EventComplaintStatusChanged, updated.Uuid, account.Uuid, updated.Status)

	rsp := respond.NewComplaintRespond(updated)
	return &rsp, nil
}

// AddAdminResponse 管理员追加回复，不变更状态
func (s *Service) AddAdminResponse(ctx context.Context, req *request.AddAdminResponseRequest) (*respond.ComplaintRespond, error) {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() {
		return nil, errorx.ErrUnauthorized
	}
	updated, err := s.store.UpdateComplaint(ctx, req.ComplaintId, func(c *model.Complaint) {
		c.AdminResponse = req.AdminResponse
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("complaint response added",
		zap.String("complaint_id", updated.Uuid),
		zap.String("admin_id", account.Uuid))

	rsp := respond.NewComplaintRespond(updated)
	return &rsp, nil
}

// DeleteComplaint 管理员删除投诉
func (s *Service) DeleteComplaint(ctx context.Context, complaintId string) error {
	account, err := s.currentAccount(ctx)
	if err != nil {
		return err
	}
	if !account.IsAdmin() {
		return errorx.ErrUnauthorized
	}
	deleted, err := s.store.DeleteComplaint(ctx, complaintId)
	if err != nil {
		return err
	}
	if !deleted {
		return errorx.New(errorx.CodeNotFound, fmt.Sprintf("complaint %s not found", complaintId))
	}
	zap.L().Info("complaint deleted",
		zap.String("complaint_id", complaintId),
		zap.String("admin_id", account.Uuid))
	s.publishEvent(mq.EventComplaintDeleted, complaintId, account.Uuid, "")
	return nil
}

// sortByCreatedAtDesc 按创建时间倒序，时间相同保持原顺序
func sortByCreatedAtDesc(complaints []model.Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}
