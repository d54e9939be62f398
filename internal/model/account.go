// Package model 定义存储层实体模型
// 本文件定义账号模型，包含基本资料和认证信息
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// 账号角色
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Account 账号模型
// 整体序列化后存入 KV 存储的 accounts 命名空间
type Account struct {
	// Uuid 账号唯一标识
	// 格式：U + 时间戳随机字符串，如 "U260828aB3xY9z"
	Uuid string `json:"id"`

	// Email 登录邮箱，全局唯一，按存储值精确匹配（区分大小写）
	Email string `json:"email"`

	// Password 密码（bcrypt 哈希）
	// 不存明文；序列化进 KV 介质，但绝不出现在响应 DTO 中
	Password string `json:"password"`

	// FullName 姓名
	FullName string `json:"full_name"`

	// Role 角色："admin" 或 "student"
	Role string `json:"role"`

	// CreatedAt 注册时间
	CreatedAt time.Time `json:"created_at"`
}

// SetPassword 将明文密码哈希后写入 Password 字段
func (a *Account) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hash)
	return nil
}

// CheckPassword 校验密码是否正确
func (a *Account) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plaintext))
	return err == nil
}

// IsAdmin 是否为管理员
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
