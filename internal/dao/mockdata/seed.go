// Package mockdata 首次运行时的默认数据播种
// 保证应用在空存储上开箱可用：一个管理员、一个学生、两条示例投诉
package mockdata

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medha_campus_server/internal/model"
	"medha_campus_server/pkg/constants"
)

// 默认账号的登录口令（仅用于演示环境）
const (
	seedAdminPassword   = "admin123"
	seedStudentPassword = "student123"
)

// defaultAccounts 构造默认账号
// 固定 Uuid，示例投诉通过 user_id 引用学生账号
func defaultAccounts() ([]model.Account, error) {
	now := time.Now()
	admin := model.Account{
		Uuid:      "admin-001",
		Email:     "admin@rgukt.ac.in",
		FullName:  "Admin User",
		Role:      model.RoleAdmin,
		CreatedAt: now,
	}
	if err := admin.SetPassword(seedAdminPassword); err != nil {
		return nil, err
	}
	student := model.Account{
		Uuid:      "student-001",
		Email:     "student@rgukt.ac.in",
		FullName:  "Test Student",
		Role:      model.RoleStudent,
		CreatedAt: now,
	}
	if err := student.SetPassword(seedStudentPassword); err != nil {
		return nil, err
	}
	return []model.Account{admin, student}, nil
}

// defaultComplaints 构造默认投诉
func defaultComplaints() []model.Complaint {
	now := time.Now()
	return []model.Complaint{
		{
			Uuid:        "complaint-001",
			UserId:      "student-001",
			Category:    "infrastructure",
			Title:       "Hostel WiFi Issues",
			Description: "The WiFi connection in Block A hostel is very unstable. It keeps disconnecting every few minutes.",
			Status:      model.StatusOpen,
			Priority:    model.PriorityMedium,
			CreatedAt:   now.Add(-2 * 24 * time.Hour),
			UpdatedAt:   now.Add(-2 * 24 * time.Hour),
		},
		{
			Uuid:          "complaint-002",
			UserId:        "student-001",
			Category:      "academic",
			Title:         "Lab Equipment Not Working",
			Description:   "Several computers in the Computer Science lab are not functioning properly.",
			Status:        model.StatusInProgress,
			Priority:      model.PriorityHigh,
			AdminResponse: "We are working on fixing the computers. Should be resolved by next week.",
			CreatedAt:     now.Add(-5 * 24 * time.Hour),
			UpdatedAt:     now.Add(-1 * 24 * time.Hour),
		},
	}
}

// Seed 播种默认数据
// 仅当命名空间为空时写入，已有数据不会被覆盖
func (s *Store) Seed(ctx context.Context) error {
	rawAccounts, err := s.kv.Get(ctx, constants.KV_KEY_ACCOUNTS)
	if err != nil {
		return err
	}
	if rawAccounts == "" {
		accounts, err := defaultAccounts()
		if err != nil {
			return err
		}
		if err := s.SaveAccounts(ctx, accounts); err != nil {
			return err
		}
		zap.L().Info("seeded default accounts", zap.Int("count", len(accounts)))
	}

	rawComplaints, err := s.kv.Get(ctx, constants.KV_KEY_COMPLAINTS)
	if err != nil {
		return err
	}
	if rawComplaints == "" {
		complaints := defaultComplaints()
		if err := s.SaveComplaints(ctx, complaints); err != nil {
			return err
		}
		zap.L().Info("seeded default complaints", zap.Int("count", len(complaints)))
	}
	return nil
}
