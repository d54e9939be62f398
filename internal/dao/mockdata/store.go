// Package mockdata 在键值介质上模拟多租户后端的数据层
// 四个命名空间：账号集合、投诉集合、当前会话槽位、当前用户缓存
// 每个命名空间整体 JSON 序列化读写，不做局部更新
package mockdata

import (
	"context"
	"encoding/json"
	"time"

	"medha_campus_server/internal/dao/kv"
	"medha_campus_server/internal/model"
	"medha_campus_server/pkg/constants"
	"medha_campus_server/pkg/errorx"
	"medha_campus_server/pkg/util/random"
)

// Store 数据访问层
// 通过构造函数注入键值介质，遵循依赖倒置原则
type Store struct {
	kv kv.KVStore
}

// NewStore 创建数据层实例
func NewStore(store kv.KVStore) *Store {
	return &Store{kv: store}
}

// ==================== 账号集合 ====================

// LoadAccounts 读取全部账号
func (s *Store) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	raw, err := s.kv.Get(ctx, constants.KV_KEY_ACCOUNTS)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var accounts []model.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeCacheError, "decode accounts collection")
	}
	return accounts, nil
}

// SaveAccounts 整体写回账号集合
func (s *Store) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "encode accounts collection")
	}
	return s.kv.Set(ctx, constants.KV_KEY_ACCOUNTS, string(raw))
}

// FindAccountByEmail 按邮箱查找账号（精确大小写匹配）
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	accounts, err := s.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "account email=%s not found", email)
}

// FindAccountByUuid 按 Uuid 查找账号
func (s *Store) FindAccountByUuid(ctx context.Context, uuid string) (*model.Account, error) {
	accounts, err := s.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Uuid == uuid {
			return &accounts[i], nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "account uuid=%s not found", uuid)
}

// CreateAccount 创建账号并持久化
// Uuid 和 CreatedAt 在此填充；邮箱唯一性由 Service 层在创建前校验
func (s *Store) CreateAccount(ctx context.Context, account *model.Account) error {
	accounts, err := s.LoadAccounts(ctx)
	if err != nil {
		return err
	}
	account.Uuid = "U" + random.GetNowAndLenRandomString(11)
	account.CreatedAt = time.Now()
	accounts = append(accounts, *account)
	return s.SaveAccounts(ctx, accounts)
}

// ==================== 投诉集合 ====================

// LoadComplaints 读取全部投诉
func (s *Store) LoadComplaints(ctx context.Context) ([]model.Complaint, error) {
	raw, err := s.kv.Get(ctx, constants.KV_KEY_COMPLAINTS)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var complaints []model.Complaint
	if err := json.Unmarshal([]byte(raw), &complaints); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeCacheError, "decode complaints collection")
	}
	return complaints, nil
}

// SaveComplaints 整体写回投诉集合
func (s *Store) SaveComplaints(ctx context.Context, complaints []model.Complaint) error {
	raw, err := json.Marshal(complaints)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "encode complaints collection")
	}
	return s.kv.Set(ctx, constants.KV_KEY_COMPLAINTS, string(raw))
}

// CreateComplaint 创建投诉并持久化
// Uuid、CreatedAt、UpdatedAt 在此填充
func (s *Store) CreateComplaint(ctx context.Context, complaint *model.Complaint) error {
	complaints, err := s.LoadComplaints(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	complaint.Uuid = "C" + random.GetNowAndLenRandomString(11)
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	complaints = append(complaints, *complaint)
	return s.SaveComplaints(ctx, complaints)
}

// FindComplaintByUuid 按 Uuid 查找投诉
func (s *Store) FindComplaintByUuid(ctx context.Context, uuid string) (*model.Complaint, error) {
	complaints, err := s.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	for i := range complaints {
		if complaints[i].Uuid == uuid {
			return &complaints[i], nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "complaint uuid=%s not found", uuid)
}

// UpdateComplaint 按 Uuid 更新投诉
// mutate 在内存副本上应用变更；UpdatedAt 统一在此刷新后整体写回
// 写回失败时不产生部分副作用（集合要么旧值要么新值）
func (s *Store) UpdateComplaint(ctx context.Context, uuid string, mutate func(*model.Complaint)) (*model.Complaint, error) {
	complaints, err := s.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range complaints {
		if complaints[i].Uuid == uuid {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errorx.Newf(errorx.CodeNotFound, "complaint uuid=%s not found", uuid)
	}
	mutate(&complaints[idx])
	complaints[idx].UpdatedAt = time.Now()
	if err := s.SaveComplaints(ctx, complaints); err != nil {
		return nil, err
	}
	updated := complaints[idx]
	return &updated, nil
}

// DeleteComplaint 按 Uuid 删除投诉
// 返回是否找到并删除了记录
func (s *Store) DeleteComplaint(ctx context.Context, uuid string) (bool, error) {
	complaints, err := s.LoadComplaints(ctx)
	if err != nil {
		return false, err
	}
	filtered := complaints[:0]
	found := false
	for _, c := range complaints {
		if c.Uuid == uuid {
			found = true
			continue
		}
		filtered = append(filtered, c)
	}
	if !found {
		return false, nil
	}
	if err := s.SaveComplaints(ctx, filtered); err != nil {
		return false, err
	}
	return true, nil
}

// ==================== 会话槽位 ====================

// GetSession 读取当前会话
// 惰性过期：发现 expires_at 已过则清除槽位并返回 nil（视为不存在）
func (s *Store) GetSession(ctx context.Context) (*model.Session, error) {
	raw, err := s.kv.Get(ctx, constants.KV_KEY_SESSION)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// 槽位内容损坏按不存在处理，同时清除
		_ = s.ClearSession(ctx)
		return nil, nil
	}
	if session.Expired() {
		if err := s.ClearSession(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &session, nil
}

// SetSession 为指定账号建立新会话（7 天窗口）
// 同时写入当前用户缓存，便于快速读取
func (s *Store) SetSession(ctx context.Context, account *model.Account) (*model.Session, error) {
	session := model.Session{
		UserId:    account.Uuid,
		Email:     account.Email,
		ExpiresAt: time.Now().Add(constants.SESSION_EXPIRY),
	}
	rawSession, err := json.Marshal(session)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeCacheError, "encode session")
	}
	if err := s.kv.Set(ctx, constants.KV_KEY_SESSION, string(rawSession)); err != nil {
		return nil, err
	}
	rawAccount, err := json.Marshal(account)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeCacheError, "encode current user")
	}
	if err := s.kv.Set(ctx, constants.KV_KEY_CURRENT_USER, string(rawAccount)); err != nil {
		return nil, err
	}
	return &session, nil
}

// ClearSession 清除会话槽位和当前用户缓存，幂等
func (s *Store) ClearSession(ctx context.Context) error {
	return s.kv.Delete(ctx, constants.KV_KEY_SESSION, constants.KV_KEY_CURRENT_USER)
}

// CurrentAccount 读取当前登录账号
// 先检查会话槽位（含惰性过期），无有效会话返回 nil
// 缓存缺失时回源账号集合并重建缓存
func (s *Store) CurrentAccount(ctx context.Context) (*model.Account, error) {
	session, err := s.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	raw, err := s.kv.Get(ctx, constants.KV_KEY_CURRENT_USER)
	if err != nil {
		return nil, err
	}
	if raw != "" {
		var account model.Account
		if err := json.Unmarshal([]byte(raw), &account); err == nil && account.Uuid == session.UserId {
			return &account, nil
		}
	}

	// 缓存缺失或与会话不一致，回源账号集合
	account, err := s.FindAccountByUuid(ctx, session.UserId)
	if err != nil {
		if errorx.IsNotFound(err) {
			// 会话指向的账号已不存在，视为无会话
			_ = s.ClearSession(ctx)
			return nil, nil
		}
		return nil, err
	}
	if rawAccount, err := json.Marshal(account); err == nil {
		_ = s.kv.Set(ctx, constants.KV_KEY_CURRENT_USER, string(rawAccount))
	}
	return account, nil
}

// Reset 清空全部命名空间并重新播种
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx,
		constants.KV_KEY_ACCOUNTS,
		constants.KV_KEY_COMPLAINTS,
		constants.KV_KEY_SESSION,
		constants.KV_KEY_CURRENT_USER,
	); err != nil {
		return err
	}
	return s.Seed(ctx)
}
