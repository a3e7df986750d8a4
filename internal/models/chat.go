// internal/models/chat.go
package models

import "time"

// 消息发送方
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Message 表示会话中的一条消息
// 创建后不可变；历史按插入顺序即为展示顺序
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession 表示一个进行中的聊天会话
// 会话内状态（余额、历史、输入中标志）只属于该会话
type ChatSession struct {
	ID            string    `json:"id"`
	AgentID       string    `json:"agent_id"`
	UserID        string    `json:"user_id,omitempty"`
	Messages      []Message `json:"messages"`
	TokenBalance  int       `json:"token_balance"`
	AgentTyping   bool      `json:"agent_typing"`
	ModelMode     bool      `json:"model_mode"`
	ReplyLanguage string    `json:"reply_language,omitempty"` // 空值表示 auto
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
}

// SessionSnapshot 返回给前端的会话视图
type SessionSnapshot struct {
	ID            string    `json:"id"`
	Agent         *Agent    `json:"agent"`
	Messages      []Message `json:"messages"`
	TokenBalance  int       `json:"token_balance"`
	AgentTyping   bool      `json:"agent_typing"`
	ModelMode     bool      `json:"model_mode"`
	ReplyLanguage string    `json:"reply_language,omitempty"`
}
