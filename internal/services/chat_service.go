// internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/lexicon"
	"github.com/lunaria-ai/lunaria/internal/models"
	"github.com/lunaria-ai/lunaria/internal/pipeline"
	"github.com/lunaria-ai/lunaria/internal/utils"
)

var (
	ErrSessionNotFound    = errors.New("会话不存在")
	ErrEmptyMessage       = errors.New("消息内容为空")
	ErrInsufficientTokens = errors.New("代币余额不足")
	ErrUnknownLanguage    = errors.New("不支持的回复语言")
)

// ChatNotifier 会话事件的推送回调（由WebSocket层实现）
type ChatNotifier interface {
	MessageDelivered(sessionID string, msg models.Message)
	TypingChanged(sessionID string, typing bool)
}

// sessionState 内存中的会话，连同每个回复周期的送达守卫
type sessionState struct {
	mu        sync.Mutex
	data      models.ChatSession
	agent     *models.Agent
	delivered map[string]bool // cycleID -> 已送达
}

// ChatService 管理聊天会话并编排回复生成
//
// 每条被接受的用户消息触发一个独立的回复周期：
// Received -> Classifying -> (ModelPath | TemplatePath) -> Decorating -> Delivered
// 分类阶段无论走哪条路径都会执行；模型路径的任何失败都转入模板路径，
// 所以每个被接受的发送最终恰好送达一条回复，用户侧永远不会看到错误终态。
// 并发发送各跑各的周期，跨周期的送达顺序不做保证。
type ChatService struct {
	agents *AgentService
	llm    *LLMService
	stats  *StatsService

	selector *pipeline.Selector

	mu       sync.RWMutex
	sessions map[string]*sessionState

	rngMu sync.Mutex
	rng   *rand.Rand

	notifierMu sync.RWMutex
	notifier   ChatNotifier

	// 模拟人类输入节奏的延迟；测试注入零延迟
	typingDelay func() time.Duration
}

// NewChatService 创建会话服务
// 随机源显式注入并同时驱动模板选择与输入延迟；typingDelay 传 nil 使用配置的随机窗口。
func NewChatService(agents *AgentService, llmService *LLMService, stats *StatsService, rng *rand.Rand, typingDelay func() time.Duration) *ChatService {
	s := &ChatService{
		agents:   agents,
		llm:      llmService,
		stats:    stats,
		selector: pipeline.NewSelector(rng),
		sessions: make(map[string]*sessionState),
		rng:      rng,
	}

	if typingDelay == nil {
		typingDelay = s.configuredTypingDelay
	}
	s.typingDelay = typingDelay

	return s
}

// SetNotifier 注册会话事件回调
func (s *ChatService) SetNotifier(n ChatNotifier) {
	s.notifierMu.Lock()
	s.notifier = n
	s.notifierMu.Unlock()
}

// configuredTypingDelay 在配置窗口内取随机延迟
func (s *ChatService) configuredTypingDelay() time.Duration {
	cfg := config.GetCurrentConfig()
	minMS, maxMS := cfg.TypingDelayMinMS, cfg.TypingDelayMaxMS
	if maxMS <= minMS {
		return time.Duration(minMS) * time.Millisecond
	}

	s.rngMu.Lock()
	delta := s.rng.Intn(maxMS - minMS)
	s.rngMu.Unlock()

	return time.Duration(minMS+delta) * time.Millisecond
}

// OpenSession 为指定角色开启新会话
// 会话带着初始代币余额和角色的开场白。
func (s *ChatService) OpenSession(agentID string) (*models.SessionSnapshot, error) {
	agent, err := s.agents.GetAgent(agentID)
	if err != nil {
		return nil, err
	}

	cfg := config.GetCurrentConfig()
	now := time.Now()

	sess := &sessionState{
		agent:     agent,
		delivered: make(map[string]bool),
		data: models.ChatSession{
			ID:      "chat_" + uuid.NewString(),
			AgentID: agent.ID,
			Messages: []models.Message{{
				ID:        uuid.NewString(),
				Role:      models.RoleAgent,
				Content:   s.agents.GreetingFor(agent),
				CreatedAt: now,
			}},
			TokenBalance: cfg.StartingTokens,
			ModelMode:    cfg.ModelMode,
			CreatedAt:    now,
			LastUpdated:  now,
		},
	}

	s.mu.Lock()
	s.sessions[sess.data.ID] = sess
	s.mu.Unlock()

	return snapshotOf(sess), nil
}

// GetSession 返回会话快照
func (s *ChatService) GetSession(sessionID string) (*models.SessionSnapshot, error) {
	sess := s.lookup(sessionID)
	if sess == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return snapshotOf(sess), nil
}

// CloseSession 关闭并丢弃会话（无持久化）
func (s *ChatService) CloseSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

// SetModelMode 切换会话的模型回复开关
func (s *ChatService) SetModelMode(sessionID string, enabled bool) error {
	sess := s.lookup(sessionID)
	if sess == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess.mu.Lock()
	sess.data.ModelMode = enabled
	sess.data.LastUpdated = time.Now()
	sess.mu.Unlock()
	return nil
}

// SetReplyLanguage 设置会话的回复语言（空串表示 auto）
func (s *ChatService) SetReplyLanguage(sessionID, language string) error {
	sess := s.lookup(sessionID)
	if sess == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if language != "" {
		supported := false
		for _, lang := range lexicon.SupportedLanguages() {
			if lang == language {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
		}
	}

	sess.mu.Lock()
	sess.data.ReplyLanguage = language
	sess.data.LastUpdated = time.Now()
	sess.mu.Unlock()
	return nil
}

// AddTokens 给会话余额充值（商店入账到当前会话）
func (s *ChatService) AddTokens(sessionID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("充值数量必须为正: %d", amount)
	}

	sess := s.lookup(sessionID)
	if sess == nil {
		return 0, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess.mu.Lock()
	sess.data.TokenBalance += amount
	balance := sess.data.TokenBalance
	sess.mu.Unlock()
	return balance, nil
}

// SendUserMessage 接受一条用户消息并异步生成回复
// 空消息或余额不足直接拒绝，不产生任何状态变化；
// 接受之后扣费、入历史、点亮输入中标志，回复周期在后台运行。
func (s *ChatService) SendUserMessage(sessionID, text string) (*models.Message, error) {
	sess := s.lookup(sessionID)
	if sess == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if s.stats != nil {
			s.stats.RecordRejected()
		}
		return nil, ErrEmptyMessage
	}

	cost := config.GetCurrentConfig().MessageCost

	sess.mu.Lock()
	if sess.data.TokenBalance < cost {
		balance := sess.data.TokenBalance
		sess.mu.Unlock()
		if s.stats != nil {
			s.stats.RecordRejected()
		}
		return nil, fmt.Errorf("%w: 余额 %d，至少需要 %d", ErrInsufficientTokens, balance, cost)
	}

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   trimmed,
		CreatedAt: time.Now(),
	}
	sess.data.Messages = append(sess.data.Messages, userMsg)
	sess.data.TokenBalance -= cost
	sess.data.AgentTyping = true
	sess.data.LastUpdated = userMsg.CreatedAt
	modelMode := sess.data.ModelMode
	langOverride := sess.data.ReplyLanguage
	sess.mu.Unlock()

	if s.stats != nil {
		s.stats.RecordSend(cost)
	}
	s.notifyTyping(sessionID, true)

	cycleID := uuid.NewString()
	go s.runReplyCycle(sess, cycleID, trimmed, modelMode, langOverride)

	return &userMsg, nil
}

// runReplyCycle 执行一个完整的回复周期
func (s *ChatService) runReplyCycle(sess *sessionState, cycleID, userText string, modelMode bool, langOverride string) {
	// 模拟人类输入节奏
	time.Sleep(s.typingDelay())

	// Classifying：三个纯函数阶段无论走哪条路径都要跑
	intent := pipeline.ClassifyIntent(userText)
	sentiment := pipeline.ScoreSentiment(userText)
	topic := pipeline.ExtractKeyword(userText)

	language := langOverride
	if language == "" {
		language = pipeline.DetectLanguage(userText)
	}

	agent := sess.agent
	reply := ""
	usedModel := false
	fellBack := false

	// ModelPath：失败就地转入模板路径，绝不向用户暴露错误
	if modelMode && s.llm != nil && s.llm.IsReady() {
		text, err := s.llm.GenerateReply(context.Background(), ReplyRequest{
			Agent:          agent,
			UserText:       userText,
			TargetLanguage: language,
		})
		if err == nil && text != "" {
			reply = text
			usedModel = true
		} else {
			fellBack = true
			fields := map[string]interface{}{"session": sess.data.ID}
			if err != nil {
				fields["error"] = err.Error()
			}
			utils.GetLogger().Warn("模型路径失败，回落到模板回复", fields)
		}
	}

	// TemplatePath
	if reply == "" {
		reply = s.selector.SelectReply(intent, agent.Personality, topic)
	}

	// Decorating
	reply = pipeline.DecorateTone(agent.Personality, reply, sentiment, intent)

	// Delivered
	if s.deliver(sess, cycleID, reply) && s.stats != nil {
		s.stats.RecordReply(usedModel, fellBack)
	}
}

// deliver 把回复写入会话历史
// 同一个周期只允许送达一次：迟到的结果（超时后才完成的模型调用）会被丢弃，
// 不会造成重复追加。
func (s *ChatService) deliver(sess *sessionState, cycleID, reply string) bool {
	now := time.Now()

	sess.mu.Lock()
	if sess.delivered[cycleID] {
		sess.mu.Unlock()
		return false
	}
	sess.delivered[cycleID] = true

	msg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAgent,
		Content:   reply,
		CreatedAt: now,
	}
	sess.data.Messages = append(sess.data.Messages, msg)
	sess.data.AgentTyping = false
	sess.data.LastUpdated = now
	sessionID := sess.data.ID
	sess.mu.Unlock()

	s.notifierMu.RLock()
	notifier := s.notifier
	s.notifierMu.RUnlock()
	if notifier != nil {
		notifier.MessageDelivered(sessionID, msg)
		notifier.TypingChanged(sessionID, false)
	}

	return true
}

func (s *ChatService) notifyTyping(sessionID string, typing bool) {
	s.notifierMu.RLock()
	notifier := s.notifier
	s.notifierMu.RUnlock()
	if notifier != nil {
		notifier.TypingChanged(sessionID, typing)
	}
}

func (s *ChatService) lookup(sessionID string) *sessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}

// snapshotOf 在会话锁内拷贝出对外视图
func snapshotOf(sess *sessionState) *models.SessionSnapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	messages := make([]models.Message, len(sess.data.Messages))
	copy(messages, sess.data.Messages)

	return &models.SessionSnapshot{
		ID:            sess.data.ID,
		Agent:         sess.agent,
		Messages:      messages,
		TokenBalance:  sess.data.TokenBalance,
		AgentTyping:   sess.data.AgentTyping,
		ModelMode:     sess.data.ModelMode,
		ReplyLanguage: sess.data.ReplyLanguage,
	}
}
