// internal/services/token_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/lunaria-ai/lunaria/internal/storage"
)

func newTestTokenService(t *testing.T) (*TokenService, *UserService) {
	t.Helper()

	fs, err := storage.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("创建文件存储失败: %v", err)
	}
	users := NewUserService(fs)
	return NewTokenService(users, fs), users
}

func TestListPackages(t *testing.T) {
	svc, _ := newTestTokenService(t)

	packages := svc.ListPackages()
	if len(packages) != 4 {
		t.Fatalf("商店应有4个套餐，实际 %d", len(packages))
	}

	for _, pkg := range packages {
		if pkg.Tokens <= 0 || pkg.PriceUSD <= 0 {
			t.Errorf("套餐 %s 定义无效: %+v", pkg.ID, pkg)
		}
	}
}

func TestPurchase(t *testing.T) {
	svc, users := newTestTokenService(t)

	user, err := users.Register("carol", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	receipt, err := svc.Purchase("carol", "popular")
	if err != nil {
		t.Fatalf("购买失败: %v", err)
	}

	// popular 套餐是 300 + 50 赠送
	if receipt.Tokens != 350 {
		t.Errorf("套餐含赠送应入账350，实际 %d", receipt.Tokens)
	}
	if receipt.NewBalance != user.TokenBalance+350 {
		t.Errorf("回执余额不符: %d", receipt.NewBalance)
	}
	if receipt.Username != "carol" {
		t.Errorf("回执用户不符: %s", receipt.Username)
	}

	reloaded, _ := users.GetUser("carol")
	if reloaded.TokenBalance != receipt.NewBalance {
		t.Errorf("购买后余额未持久化: %d", reloaded.TokenBalance)
	}
}

func TestPurchaseErrors(t *testing.T) {
	svc, users := newTestTokenService(t)

	if _, err := users.Register("dave", ""); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	if _, err := svc.Purchase("dave", "no-such-package"); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("未知套餐应返回 ErrPackageNotFound，实际 %v", err)
	}
	if _, err := svc.Purchase("nobody", "starter"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("未知用户应返回 ErrUserNotFound，实际 %v", err)
	}
}
