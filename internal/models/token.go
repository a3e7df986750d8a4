// internal/models/token.go
package models

import "time"

// TokenPackage 代币商店中的一个套餐
type TokenPackage struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Tokens   int     `json:"tokens"`
	Bonus    int     `json:"bonus"`
	PriceUSD float64 `json:"price_usd"`
	Popular  bool    `json:"popular,omitempty"`
}

// PurchaseReceipt 模拟购买的回执（无真实支付结算）
type PurchaseReceipt struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	PackageID  string    `json:"package_id"`
	Tokens     int       `json:"tokens"`
	NewBalance int       `json:"new_balance"`
	CreatedAt  time.Time `json:"created_at"`
}
