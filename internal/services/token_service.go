// internal/services/token_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunaria-ai/lunaria/internal/models"
	"github.com/lunaria-ai/lunaria/internal/storage"
)

var ErrPackageNotFound = errors.New("代币套餐不存在")

// TokenService 代币商店
// 购买是模拟的：直接入账并出回执，没有真实支付结算。
type TokenService struct {
	users    *UserService
	storage  *storage.FileStorage
	packages []models.TokenPackage
}

const receiptsDir = "receipts"

// NewTokenService 创建商店服务
func NewTokenService(users *UserService, fs *storage.FileStorage) *TokenService {
	return &TokenService{
		users:   users,
		storage: fs,
		packages: []models.TokenPackage{
			{ID: "starter", Name: "Starter Pack", Tokens: 100, Bonus: 0, PriceUSD: 4.99},
			{ID: "popular", Name: "Popular Pack", Tokens: 300, Bonus: 50, PriceUSD: 9.99, Popular: true},
			{ID: "premium", Name: "Premium Pack", Tokens: 700, Bonus: 150, PriceUSD: 19.99},
			{ID: "ultimate", Name: "Ultimate Pack", Tokens: 1500, Bonus: 500, PriceUSD: 39.99},
		},
	}
}

// ListPackages 返回商店套餐列表
func (s *TokenService) ListPackages() []models.TokenPackage {
	return s.packages
}

// GetPackage 按ID查找套餐
func (s *TokenService) GetPackage(id string) (*models.TokenPackage, error) {
	for i := range s.packages {
		if s.packages[i].ID == id {
			return &s.packages[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, id)
}

// Purchase 模拟购买：给用户入账并生成回执
func (s *TokenService) Purchase(username, packageID string) (*models.PurchaseReceipt, error) {
	pkg, err := s.GetPackage(packageID)
	if err != nil {
		return nil, err
	}

	total := pkg.Tokens + pkg.Bonus
	newBalance, err := s.users.CreditTokens(username, total)
	if err != nil {
		return nil, err
	}

	receipt := &models.PurchaseReceipt{
		ID:         "rcpt_" + uuid.NewString(),
		Username:   username,
		PackageID:  pkg.ID,
		Tokens:     total,
		NewBalance: newBalance,
		CreatedAt:  time.Now(),
	}

	if s.storage != nil {
		if err := s.storage.SaveJSON(receiptsDir, receipt.ID+".json", receipt); err != nil {
			// 回执落盘失败不回滚入账，只记录
			return receipt, nil
		}
	}

	return receipt, nil
}
