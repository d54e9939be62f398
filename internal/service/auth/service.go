// Package auth 实现注册登录与会话管理
// service.go
// 核心职责：账号注册、登录、登出与当前会话查询
// 权限判定始终依据存储中的会话槽，令牌只作为传输凭证
package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"medha_campus_server/internal/dao/mockdata"
	"medha_campus_server/internal/dto/request"
	"medha_campus_server/internal/dto/respond"
	"medha_campus_server/internal/model"
	"medha_campus_server/pkg/errorx"
	"medha_campus_server/pkg/util/jwt"
)

// Service 认证服务
type Service struct {
	store    *mockdata.Store
	sessions *SessionManager
}

func NewService(store *mockdata.Store, sessions *SessionManager) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
	}
}

// Sessions 返回会话事件管理器，供其它组件订阅
func (s *Service) Sessions() *SessionManager {
	return s.sessions
}

// SignUp 注册新账号并建立会话
// 邮箱按存储值精确匹配（区分大小写），重复注册返回已注册错误且不改动既有账号
func (s *Service) SignUp(ctx context.Context, req *request.SignUpRequest) (*respond.AuthRespond, error) {
	existing, err := s.store.FindAccountByEmail(ctx, req.Email)
	if err != nil && !errorx.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, errorx.New(errorx.CodeAlreadyRegistered, "Email already registered")
	}

	account := &model.Account{
		Email:    req.Email,
		FullName: strings.TrimSpace(req.FullName),
		Role:     model.RoleStudent,
	}
	if err := account.SetPassword(req.Password); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "failed to hash password")
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	zap.L().Info("account registered", zap.String("user_id", account.Uuid), zap.String("email", account.Email))

	return s.establishSession(ctx, account)
}

// SignIn 校验邮箱密码并建立会话
// 账号不存在与密码错误返回同一错误，避免探测已注册邮箱
func (s *Service) SignIn(ctx context.Context, req *request.SignInRequest) (*respond.AuthRespond, error) {
	account, err := s.store.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			// 账号不存在与密码错误返回同一错误
			return nil, errorx.New(errorx.CodeInvalidCredentials, "Invalid email or password")
		}
		return nil, err
	}
	if !account.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidCredentials, "Invalid email or password")
	}
	zap.L().Info("account signed in", zap.String("user_id", account.Uuid))

	return s.establishSession(ctx, account)
}

// establishSession 写入会话槽并签发访问令牌
func (s *Service) establishSession(ctx context.Context, account *model.Account) (*respond.AuthRespond, error) {
	if _, err := s.store.SetSession(ctx, account); err != nil {
		return nil, err
	}
	token, err := jwt.GenerateAccessToken(account.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "failed to issue access token")
	}
	s.sessions.Notify(SessionEvent{Type: SessionSignedIn, Account: account})
	return &respond.AuthRespond{
		Account:     respond.NewAccountRespond(account),
		AccessToken: token,
	}, nil
}

// SignOut 清除会话槽，重复登出不报错
func (s *Service) SignOut(ctx context.Context) error {
	account, err := s.store.CurrentAccount(ctx)
	if err != nil {
		return err
	}
	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}
	if account != nil {
		zap.L().Info("account signed out", zap.String("user_id", account.Uuid))
	}
	s.sessions.Notify(SessionEvent{Type: SessionSignedOut, Account: account})
	return nil
}

// GetSession 返回当前有效会话，未登录或已过期返回 nil
func (s *Service) GetSession(ctx context.Context) (*respond.SessionRespond, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	account, err := s.store.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return respond.NewSessionRespond(session, account), nil
}

// GetCurrentAccount 返回当前会话对应的账号，未登录返回未认证错误
func (s *Service) GetCurrentAccount(ctx context.Context) (*model.Account, error) {
	account, err := s.store.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errorx.ErrUnauthenticated
	}
	return account, nil
}
