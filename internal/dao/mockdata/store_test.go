package mockdata

import (
	"context"
	"testing"
	"time"

	"medha_campus_server/internal/dao/kv"
	"medha_campus_server/internal/model"
	"medha_campus_server/pkg/constants"
	"medha_campus_server/pkg/errorx"
)

func newSeededStore(t *testing.T) (*Store, *kv.MemoryKV) {
	t.Helper()
	mem := kv.NewMemoryKV()
	store := NewStore(mem)
	if err := store.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store, mem
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	store, _ := newSeededStore(t)
	ctx := context.Background()

	account := &model.Account{Email: "extra@rgukt.ac.in", FullName: "Extra", Role: model.RoleStudent}
	if err := account.SetPassword("pw123456"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	// 重复播种不得覆盖已有数据
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	accounts, err := store.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("load accounts: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("accounts = %d, want 3 (2 seeded + 1 created)", len(accounts))
	}
}

func TestSeededPasswordsAreHashed(t *testing.T) {
	store, _ := newSeededStore(t)

	admin, err := store.FindAccountByUuid(context.Background(), "admin-001")
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if admin.Password == "admin123" {
		t.Fatal("seeded password stored in plaintext")
	}
	if !admin.CheckPassword("admin123") {
		t.Fatal("seeded password does not verify")
	}
	if admin.CheckPassword("wrong") {
		t.Fatal("wrong password verified")
	}
}

func TestCreateComplaintAssignsIdentity(t *testing.T) {
	store, _ := newSeededStore(t)
	ctx := context.Background()

	complaint := &model.Complaint{
		UserId:      "student-001",
		Category:    "other",
		Title:       "t",
		Description: "d",
		Status:      model.StatusOpen,
		Priority:    model.PriorityLow,
	}
	if err := store.CreateComplaint(ctx, complaint); err != nil {
		t.Fatalf("create complaint: %v", err)
	}
	if complaint.Uuid == "" || complaint.Uuid[0] != 'C' {
		t.Fatalf("uuid = %q", complaint.Uuid)
	}
	if complaint.CreatedAt.IsZero() || !complaint.CreatedAt.Equal(complaint.UpdatedAt) {
		t.Fatalf("timestamps = %v / %v", complaint.CreatedAt, complaint.UpdatedAt)
	}

	found, err := store.FindComplaintByUuid(ctx, complaint.Uuid)
	if err != nil {
		t.Fatalf("find complaint: %v", err)
	}
	if found.Title != "t" {
		t.Fatalf("roundtrip title = %q", found.Title)
	}
}

func TestUpdateComplaintRefreshesUpdatedAt(t *testing.T) {
	store, _ := newSeededStore(t)
	ctx := context.Background()

	original, err := store.FindComplaintByUuid(ctx, "complaint-001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	updated, err := store.UpdateComplaint(ctx, "complaint-001", func(c *model.Complaint) {
		c.Status = model.StatusInProgress
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.StatusInProgress {
		t.Fatalf("status = %q", updated.Status)
	}
	if !updated.UpdatedAt.After(original.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: %v -> %v", original.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Fatal("created_at must not change on update")
	}

	if _, err := store.UpdateComplaint(ctx, "missing", func(c *model.Complaint) {}); !errorx.IsNotFound(err) {
		t.Fatalf("missing update err = %v", err)
	}
}

func TestDeleteComplaintReportsFound(t *testing.T) {
	store, _ := newSeededStore(t)
	ctx := context.Background()

	deleted, err := store.DeleteComplaint(ctx, "complaint-002")
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	deleted, err = store.DeleteComplaint(ctx, "complaint-002")
	if err != nil || deleted {
		t.Fatalf("repeat delete = %v, %v", deleted, err)
	}
}

func TestSessionRoundtripAndClear(t *testing.T) {
	store, _ := newSeededStore(t)
	ctx := context.Background()

	account, err := store.FindAccountByUuid(ctx, "student-001")
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	session, err := store.SetSession(ctx, account)
	if err != nil {
		t.Fatalf("set session: %v", err)
	}
	if remaining := time.Until(session.ExpiresAt); remaining < constants.SESSION_EXPIRY-time.Minute {
		t.Fatalf("session window = %v, want about %v", remaining, constants.SESSION_EXPIRY)
	}

	got, err := store.GetSession(ctx)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil || got.UserId != "student-001" {
		t.Fatalf("session = %+v", got)
	}

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("clear session: %v", err)
	}
	if got, _ := store.GetSession(ctx); got != nil {
		t.Fatalf("session after clear = %+v", got)
	}
	// 幂等
	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("repeat clear: %v", err)
	}
}

func TestGetSessionEvictsCorruptSlot(t *testing.T) {
	store, mem := newSeededStore(t)
	ctx := context.Background()

	if err := mem.Set(ctx, constants.KV_KEY_SESSION, "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.GetSession(ctx)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got != nil {
		t.Fatalf("corrupt slot returned session: %+v", got)
	}
	if raw, _ := mem.Get(ctx, constants.KV_KEY_SESSION); raw != "" {
		t.Fatalf("corrupt slot not evicted: %q", raw)
	}
}

func TestCurrentAccountRebuildsCache(t *testing.T) {
	store, mem := newSeededStore(t)
	ctx := context.Background()

	account, err := store.FindAccountByUuid(ctx, "admin-001")
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	if _, err := store.SetSession(ctx, account); err != nil {
		t.Fatalf("set session: %v", err)
	}

	// 清掉缓存，CurrentAccount 要能从账号集合回源
	if err := mem.Delete(ctx, constants.KV_KEY_CURRENT_USER); err != nil {
		t.Fatalf("delete cache: %v", err)
	}
	got, err := store.CurrentAccount(ctx)
	if err != nil {
		t.Fatalf("current account: %v", err)
	}
	if got == nil || got.Uuid != "admin-001" {
		t.Fatalf("account = %+v", got)
	}
	if raw, _ := mem.Get(ctx, constants.KV_KEY_CURRENT_USER); raw == "" {
		t.Fatal("cache not rebuilt")
	}
}

func TestCurrentAccountClearsSessionForVanishedUser(t *testing.T) {
	store, mem := newSeededStore(t)
	ctx := context.Background()

	account, err := store.FindAccountByUuid(ctx, "student-001")
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	if _, err := store.SetSession(ctx, account); err != nil {
		t.Fatalf("set session: %v", err)
	}

	// 账号集合清空后，指向它的会话视为失效
	if err := mem.Delete(ctx, constants.KV_KEY_ACCOUNTS, constants.KV_KEY_CURRENT_USER); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := store.CurrentAccount(ctx)
	if err != nil {
		t.Fatalf("current account: %v", err)
	}
	if got != nil {
		t.Fatalf("vanished account returned: %+v", got)
	}
	if raw, _ := mem.Get(ctx, constants.KV_KEY_SESSION); raw != "" {
		t.Fatal("stale session not cleared")
	}
}

func TestResetRestoresSeedData(t *testing.T) {
	store, _ := newSeededStore(t)
	ctx := context.Background()

	if _, err := store.DeleteComplaint(ctx, "complaint-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	complaints, err := store.LoadComplaints(ctx)
	if err != nil {
		t.Fatalf("load complaints: %v", err)
	}
	if len(complaints) != 2 {
		t.Fatalf("complaints after reset = %d, want 2", len(complaints))
	}
}
