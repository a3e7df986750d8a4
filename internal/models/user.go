// internal/models/user.go
package models

import "time"

// User 表示一个注册用户（无真实身份校验，演示用）
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	TokenBalance int       `json:"token_balance"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
	LastUpdated  time.Time `json:"last_updated"`
}

// AuthSession 登录后颁发的不透明会话令牌
type AuthSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
