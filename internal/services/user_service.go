// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/models"
	"github.com/lunaria-ai/lunaria/internal/storage"
)

var (
	ErrUserNotFound  = errors.New("用户不存在")
	ErrUserExists    = errors.New("用户名已被占用")
	ErrInvalidToken  = errors.New("会话令牌无效或已过期")
	ErrEmptyUsername = errors.New("用户名不能为空")
)

// UserService 处理用户注册、登录与代币余额
// 没有真实身份校验：登录只需用户名，颁发不透明令牌，演示用。
type UserService struct {
	storage *storage.FileStorage

	// 登录令牌只存在内存里，重启即失效
	sessionMutex sync.RWMutex
	sessions     map[string]*models.AuthSession
}

const usersDir = "users"

// NewUserService 创建用户服务
func NewUserService(fs *storage.FileStorage) *UserService {
	return &UserService{
		storage:  fs,
		sessions: make(map[string]*models.AuthSession),
	}
}

// Register 注册新用户并赠送初始代币
func (s *UserService) Register(username, email string) (*models.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if s.storage.FileExists(usersDir, username+".json") {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	now := time.Now()
	user := &models.User{
		ID:           "user_" + uuid.NewString(),
		Username:     username,
		Email:        email,
		TokenBalance: config.GetCurrentConfig().StartingTokens,
		CreatedAt:    now,
		LastLogin:    now,
		LastUpdated:  now,
	}

	if err := s.saveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 登录并颁发会话令牌
func (s *UserService) Login(username string) (*models.User, *models.AuthSession, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, nil, err
	}

	user.LastLogin = time.Now()
	if err := s.saveUser(user); err != nil {
		return nil, nil, err
	}

	session := &models.AuthSession{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	s.sessionMutex.Lock()
	s.sessions[session.Token] = session
	s.sessionMutex.Unlock()

	return user, session, nil
}

// Resolve 根据令牌找回登录用户
func (s *UserService) Resolve(token string) (*models.User, error) {
	s.sessionMutex.RLock()
	session, ok := s.sessions[token]
	s.sessionMutex.RUnlock()

	if !ok || time.Now().After(session.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	return s.getUserByID(session.UserID)
}

// GetUser 按用户名读取用户
func (s *UserService) GetUser(username string) (*models.User, error) {
	if !s.storage.FileExists(usersDir, username+".json") {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	var user models.User
	if err := s.storage.LoadJSON(usersDir, username+".json", &user); err != nil {
		return nil, fmt.Errorf("读取用户数据失败: %w", err)
	}
	return &user, nil
}

// CreditTokens 给用户余额充值，返回新余额
func (s *UserService) CreditTokens(username string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("充值数量必须为正: %d", amount)
	}

	user, err := s.GetUser(username)
	if err != nil {
		return 0, err
	}

	user.TokenBalance += amount
	if err := s.saveUser(user); err != nil {
		return 0, err
	}
	return user.TokenBalance, nil
}

func (s *UserService) getUserByID(userID string) (*models.User, error) {
	files, err := s.storage.ListFiles(usersDir)
	if err != nil {
		return nil, err
	}

	for _, filename := range files {
		var user models.User
		if err := s.storage.LoadJSON(usersDir, filename, &user); err != nil {
			continue
		}
		if user.ID == userID {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
}

func (s *UserService) saveUser(user *models.User) error {
	user.LastUpdated = time.Now()
	if err := s.storage.SaveJSON(usersDir, user.Username+".json", user); err != nil {
		return fmt.Errorf("保存用户数据失败: %w", err)
	}
	return nil
}
