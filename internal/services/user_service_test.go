// internal/services/user_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/storage"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()

	fs, err := storage.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("创建文件存储失败: %v", err)
	}
	return NewUserService(fs)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestUserService(t)

	user, err := svc.Register("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.TokenBalance != config.GetCurrentConfig().StartingTokens {
		t.Errorf("新用户初始余额不符: %d", user.TokenBalance)
	}

	// 重名注册被拒
	if _, err := svc.Register("alice", ""); !errors.Is(err, ErrUserExists) {
		t.Errorf("重名注册应返回 ErrUserExists，实际 %v", err)
	}

	// 空用户名被拒
	if _, err := svc.Register("", ""); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("空用户名应返回 ErrEmptyUsername，实际 %v", err)
	}

	loggedIn, session, err := svc.Login("alice")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Error("登录返回的用户不符")
	}
	if session.Token == "" {
		t.Error("登录应颁发令牌")
	}

	resolved, err := svc.Resolve(session.Token)
	if err != nil {
		t.Fatalf("令牌解析失败: %v", err)
	}
	if resolved.Username != "alice" {
		t.Errorf("令牌解析到错误用户: %s", resolved.Username)
	}

	if _, err := svc.Resolve("bogus-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("无效令牌应返回 ErrInvalidToken，实际 %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestUserService(t)

	if _, _, err := svc.Login("nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("未注册用户登录应返回 ErrUserNotFound，实际 %v", err)
	}
}

func TestCreditTokens(t *testing.T) {
	svc := newTestUserService(t)

	user, err := svc.Register("bob", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	balance, err := svc.CreditTokens("bob", 150)
	if err != nil {
		t.Fatalf("入账失败: %v", err)
	}
	if balance != user.TokenBalance+150 {
		t.Errorf("入账后余额不符: %d", balance)
	}

	// 余额持久化
	reloaded, err := svc.GetUser("bob")
	if err != nil {
		t.Fatalf("读取用户失败: %v", err)
	}
	if reloaded.TokenBalance != balance {
		t.Errorf("余额未持久化: %d != %d", reloaded.TokenBalance, balance)
	}

	if _, err := svc.CreditTokens("bob", -5); err == nil {
		t.Error("负数入账应返回错误")
	}
	if _, err := svc.CreditTokens("nobody", 10); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("给未知用户入账应返回 ErrUserNotFound，实际 %v", err)
	}
}
