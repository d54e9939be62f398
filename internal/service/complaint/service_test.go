package complaint

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"medha_campus_server/internal/dao/kv"
	"medha_campus_server/internal/dao/mockdata"
	"medha_campus_server/internal/dto/request"
	"medha_campus_server/internal/infrastructure/mq"
	"medha_campus_server/internal/model"
	"medha_campus_server/pkg/constants"
	"medha_campus_server/pkg/errorx"
)

// recordingPublisher 记录发布的事件，便于断言
type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.ComplaintEvent
}

func (p *recordingPublisher) Publish(event mq.ComplaintEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}
func (p *recordingPublisher) Start() {}
func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) all() []mq.ComplaintEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mq.ComplaintEvent(nil), p.events...)
}

func newTestService(t *testing.T) (*Service, *mockdata.Store, *recordingPublisher) {
	t.Helper()
	store := mockdata.NewStore(kv.NewMemoryKV())
	if err := store.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	publisher := &recordingPublisher{}
	return NewService(store, publisher), store, publisher
}

func signInAs(t *testing.T, store *mockdata.Store, uuid string) {
	t.Helper()
	account, err := store.FindAccountByUuid(context.Background(), uuid)
	if err != nil {
		t.Fatalf("find account %s: %v", uuid, err)
	}
	if _, err := store.SetSession(context.Background(), account); err != nil {
		t.Fatalf("set session: %v", err)
	}
}

func TestSubmitComplaintDefaults(t *testing.T) {
	svc, store, publisher := newTestService(t)
	ctx := context.Background()
	signInAs(t, store, "student-001")

	rsp, err := svc.SubmitComplaint(ctx, &request.SubmitComplaintRequest{
		Category:    "infrastructure",
		Title:       "Broken fan",
		Description: "Ceiling fan in room 204 is broken.",
	})
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}
	if rsp.Status != model.StatusOpen {
		t.Fatalf("status = %q, want open", rsp.Status)
	}
	if rsp.Priority != model.PriorityMedium {
		t.Fatalf("priority = %q, want medium default", rsp.Priority)
	}
	if rsp.UserId != "student-001" {
		t.Fatalf("user_id = %q, want session owner", rsp.UserId)
	}
	if !strings.HasPrefix(rsp.Uuid, "C") {
		t.Fatalf("uuid = %q, want C prefix", rsp.Uuid)
	}
	if rsp.ResolvedAt != "" {
		t.Fatalf("resolved_at set on fresh complaint: %q", rsp.ResolvedAt)
	}

	events := publisher.all()
	if len(events) != 1 || events[0].Type != mq.EventComplaintSubmitted {
		t.Fatalf("published events = %+v", events)
	}
	if events[0].EventId == "" {
		t.Fatal("event id is empty")
	}
}

func TestSubmitComplaintUserIdNotSpoofable(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	signInAs(t, store, "admin-001")

	// 请求体中没有 user_id 字段可伪造，归属人只能来自会话
	rsp, err := svc.SubmitComplaint(ctx, &request.SubmitComplaintRequest{
		Category:    "other",
		Title:       "t",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}
	if rsp.UserId != "admin-001" {
		t.Fatalf("user_id = %q, want admin-001", rsp.UserId)
	}
}

func TestSubmitComplaintRejectsOversizedAttachment(t *testing.T) {
	svc, store, _ := newTestService(t)
	signInAs(t, store, "student-001")

	_, err := svc.SubmitComplaint(context.Background(), &request.SubmitComplaintRequest{
		Category:       "other",
		Title:          "t",
		Description:    "d",
		AttachmentData: strings.Repeat("A", constants.ATTACHMENT_MAX_SIZE+1),
		AttachmentName: "big.png",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("oversized attachment err = %v", err)
	}
}

func TestSubmitComplaintUnauthenticated(t *testing.T) {
	svc, _, publisher := newTestService(t)

	_, err := svc.SubmitComplaint(context.Background(), &request.SubmitComplaintRequest{
		Category:    "other",
		Title:       "t",
		Description: "d",
	})
	if errorx.GetCode(err) != errorx.CodeUnauthenticated {
		t.Fatalf("err = %v, want unauthenticated", err)
	}
	if len(publisher.all()) != 0 {
		t.Fatal("denied submit must not publish events")
	}
}

func TestGetUserComplaintsOwnOnlyDescending(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	signInAs(t, store, "student-001")

	// 追加一条更新的投诉，校验排序
	if _, err := svc.SubmitComplaint(ctx, &request.SubmitComplaintRequest{
		Category:    "mess",
		Title:       "Food quality",
		Description: "d",
	}); err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}

	list, err := svc.GetUserComplaints(ctx)
	if err != nil {
		t.Fatalf("GetUserComplaints: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for _, c := range list {
		if c.UserId != "student-001" {
			t.Fatalf("foreign complaint leaked: %+v", c)
		}
	}
	for i := 1; i < len(list); i++ {
		prev, _ := time.Parse(time.RFC3339, list[i-1].CreatedAt)
		cur, _ := time.Parse(time.RFC3339, list[i].CreatedAt)
		if cur.After(prev) {
			t.Fatalf("list not sorted by created_at desc at index %d", i)
		}
	}
}

func TestGetAllComplaintsAdminOnly(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	signInAs(t, store, "student-001")
	if _, err := svc.GetAllComplaints(ctx); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("student GetAllComplaints err = %v, want unauthorized", err)
	}

	signInAs(t, store, "admin-001")
	list, err := svc.GetAllComplaints(ctx)
	if err != nil {
		t.Fatalf("admin GetAllComplaints: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2 seeded complaints", len(list))
	}
}

func TestGetAllComplaintsPublicScrubbed(t *testing.T) {
	svc, _, _ := newTestService(t)

	// 无需登录
	list, err := svc.GetAllComplaintsPublic(context.Background())
	if err != nil {
		t.Fatalf("GetAllComplaintsPublic: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	for _, c := range list {
		if c.UserId != "" || c.AttachmentData != "" || c.AttachmentName != "" {
			t.Fatalf("public view leaked private fields: %+v", c)
		}
	}
}

func TestGetComplaintByIdOwnership(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	signInAs(t, store, "student-001")
	if _, err := svc.GetComplaintById(ctx, "complaint-001"); err != nil {
		t.Fatalf("owner GetComplaintById: %v", err)
	}
	if _, err := svc.GetComplaintById(ctx, "missing"); !errorx.IsNotFound(err) {
		t.Fatalf("missing complaint err = %v", err)
	}

	// 另一个学生无权查看他人投诉
	signInAs(t, store, "admin-001")
	if _, err := svc.GetComplaintById(ctx, "complaint-001"); err != nil {
		t.Fatalf("admin GetComplaintById: %v", err)
	}
}

func TestUpdateComplaintStatusStampsResolvedAtOnce(t *testing.T) {
	svc, store, publisher := newTestService(t)
	ctx := context.Background()
	signInAs(t, store, "admin-001")

	before := time.Now()
	rsp, err := svc.UpdateComplaintStatus(ctx, &request.UpdateComplaintStatusRequest{
		ComplaintId:   "complaint-001",
		Status:        model.StatusResolved,
		AdminResponse: "Router replaced.",
	})
	if err != nil {
		t.Fatalf("UpdateComplaintStatus: %v", err)
	}
	if rsp.Status != model.StatusResolved {
		t.Fatalf("status = %q", rsp.Status)
	}
	if rsp.AdminResponse != "Router replaced." {
		t.Fatalf("admin_response = %q", rsp.AdminResponse)
	}
	resolvedAt, err := time.Parse(time.RFC3339, rsp.ResolvedAt)
	if err != nil {
		t.Fatalf("resolved_at = %q: %v", rsp.ResolvedAt, err)
	}
	if resolvedAt.Before(before.Add(-time.Second)) {
		t.Fatalf("resolved_at %v before update time %v", resolvedAt, before)
	}

	// 再转 closed，resolved_at 不得改写
	rsp2, err := svc.UpdateComplaintStatus(ctx, &request.UpdateComplaintStatusRequest{
		ComplaintId: "complaint-001",
		Status:      model.StatusClosed,
	})
	if err != nil {
		t.Fatalf("second UpdateComplaintStatus: %v", err)
	}
	if rsp2.ResolvedAt != rsp.ResolvedAt {
		t.Fatalf("resolved_at changed: %q -> %q", rsp.ResolvedAt, rsp2.ResolvedAt)
	}
	// 状态未带新回复时保留旧回复
	if rsp2.AdminResponse != "Router replaced." {
		t.Fatalf("admin_response lost: %q", rsp2.AdminResponse)
	}

	events := publisher.all()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Type != mq.EventComplaintStatusChanged || events[0].Status != model.StatusResolved {
		t.Fatalf("first event = %+v", events[0])
	}
}

func TestUpdateComplaintStatusForbiddenForStudent(t *testing.T) {
	svc, store, publisher := newTestService(t)
	ctx := context.Background()
	signInAs(t, store, "student-001")

	_, err := svc.UpdateComplaintStatus(ctx, &request.UpdateComplaintStatusRequest{
		ComplaintId: "complaint-001",
		Status:      model.StatusResolved,
	})
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("err = %v, want unauthorized", err)
	}

	// 拒绝的调用不得留下任何副作用
	complaint, findErr := store.FindComplaintByUuid(ctx, "complaint-001")
	if findErr != nil {
		t.Fatalf("FindComplaintByUuid: %v", findErr)
	}
	if complaint.Status != model.StatusOpen || complaint.ResolvedAt != nil {
		t.Fatalf("denied update mutated complaint: %+v", complaint)
	}
	if len(publisher.all()) != 0 {
		t.Fatal("denied update published events")
	}
}

func TestAddAdminResponseKeepsStatus(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	signInAs(t, store, "admin-001")

	rsp, err := svc.AddAdminResponse(ctx, &request.AddAdminResponseRequest{
		ComplaintId:   "complaint-001",
		AdminResponse: "We are looking into it.",
	})
	if err != nil {
		t.Fatalf("AddAdminResponse: %v", err)
	}
	if rsp.Status != model.StatusOpen {
		t.Fatalf("status changed by response: %q", rsp.Status)
	}
	if rsp.AdminResponse != "We are looking into it." {
		t.Fatalf("admin_response = %q", rsp.AdminResponse)
	}
}

func TestDeleteComplaint(t *testing.T) {
	svc, store, publisher := newTestService(t)
	ctx := context.Background()

	signInAs(t, store, "student-001")
	if err := svc.DeleteComplaint(ctx, "complaint-001"); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("student delete err = %v, want unauthorized", err)
	}

	signInAs(t, store, "admin-001")
	if err := svc.DeleteComplaint(ctx, "complaint-001"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := store.FindComplaintByUuid(ctx, "complaint-001"); !errorx.IsNotFound(err) {
		t.Fatalf("complaint still present: %v", err)
	}
	if err := svc.DeleteComplaint(ctx, "complaint-001"); !errorx.IsNotFound(err) {
		t.Fatalf("repeat delete err = %v, want not found", err)
	}

	events := publisher.all()
	if len(events) != 1 || events[0].Type != mq.EventComplaintDeleted {
		t.Fatalf("events = %+v", events)
	}
}
