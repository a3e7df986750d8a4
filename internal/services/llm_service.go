// internal/services/llm_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/llm"
	"github.com/lunaria-ai/lunaria/internal/models"
	"github.com/lunaria-ai/lunaria/internal/utils"
)

var (
	ErrLLMNotReady  = errors.New("模型服务未就绪")
	ErrModelTimeout = errors.New("模型调用超时")
)

// LLMService 是外部模型的适配层
// 昂贵的引擎句柄只初始化一次并在所有调用间共享，由编排器注入，不走环境全局。
// 冷启动（引擎未热）与热态使用不同的超时预算；适配器本身不做重试。
type LLMService struct {
	providerMutex sync.RWMutex
	provider      llm.Provider
	providerName  string
	isReady       bool
	readyState    string

	// 首次成功调用之后视为已热
	warmMutex sync.Mutex
	warmed    bool

	coldTimeout time.Duration
	warmTimeout time.Duration
}

// ReplyRequest 外部模型边界的请求对象
type ReplyRequest struct {
	Agent          *models.Agent
	UserText       string
	TargetLanguage string // 空值表示跟随用户语言
}

// NewLLMService 按当前配置创建模型适配服务
// 初始化失败返回未就绪的服务而不是错误：模板路径永远可用。
func NewLLMService() *LLMService {
	service := &LLMService{
		readyState:  "Uninitialized",
		coldTimeout: 90 * time.Second,
		warmTimeout: 8 * time.Second,
	}

	cfg := config.GetCurrentConfig()
	if cfg == nil {
		service.readyState = "Failed to retrieve configuration"
		return service
	}

	service.coldTimeout = time.Duration(cfg.ColdTimeout)
	service.warmTimeout = time.Duration(cfg.WarmTimeout)

	if cfg.LLMProvider == "" {
		service.readyState = "Model provider not configured"
		return service
	}

	provider, err := llm.GetProvider(cfg.LLMProvider, cfg.LLMConfig)
	if err != nil {
		service.readyState = fmt.Sprintf("Initialization failed: %v", err)
		return service
	}

	service.provider = provider
	service.providerName = cfg.LLMProvider
	service.isReady = true
	service.readyState = "Ready"

	return service
}

// IsReady 返回服务是否已就绪
func (s *LLMService) IsReady() bool {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.provider != nil && s.isReady
}

// GetProviderStatus 返回就绪状态与可读描述
func (s *LLMService) GetProviderStatus() (bool, string) {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	if s.provider != nil && s.isReady {
		return true, "Ready"
	}
	return false, s.readyState
}

// UpdateProvider 切换模型提供者
func (s *LLMService) UpdateProvider(providerName string, providerConfig map[string]string) error {
	provider, err := llm.GetProvider(providerName, providerConfig)
	if err != nil {
		s.providerMutex.Lock()
		s.isReady = false
		s.readyState = fmt.Sprintf("Configuration failed: %v", err)
		s.providerMutex.Unlock()
		return err
	}

	s.providerMutex.Lock()
	s.provider = provider
	s.providerName = providerName
	s.isReady = true
	s.readyState = "Ready"
	s.providerMutex.Unlock()

	// 新引擎要重新经历冷启动
	s.warmMutex.Lock()
	s.warmed = false
	s.warmMutex.Unlock()

	return nil
}

// SetTimeouts 更新冷/热调用预算（配置热更新时调用）
func (s *LLMService) SetTimeouts(cold, warm time.Duration) {
	s.warmMutex.Lock()
	s.coldTimeout = cold
	s.warmTimeout = warm
	s.warmMutex.Unlock()
}

// ReplyTimeout 当前应采用的调用预算（冷/热）
func (s *LLMService) ReplyTimeout() time.Duration {
	s.warmMutex.Lock()
	defer s.warmMutex.Unlock()

	if s.warmed {
		return s.warmTimeout
	}
	return s.coldTimeout
}

// BuildSystemPrompt 用角色属性和目标语言拼装系统指令
func (s *LLMService) BuildSystemPrompt(agent *models.Agent, language string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are %s, an AI companion with a %s personality.", agent.Name, agent.Personality))
	if agent.Description != "" {
		parts = append(parts, agent.Description)
	}
	if len(agent.Traits) > 0 {
		parts = append(parts, fmt.Sprintf("Traits: %s.", strings.Join(agent.Traits, ", ")))
	}
	parts = append(parts, "Respond concisely in 1-2 sentences, natural and conversational, and stay in character.")
	parts = append(parts, "Avoid explicit content, slurs, or harmful advice. Be supportive and emotionally intelligent.")

	if language != "" {
		parts = append(parts, fmt.Sprintf("Reply in %s. If the user's message uses a different language/script, prefer their language.", language))
	} else {
		parts = append(parts, "Reply in the language the user used; if unclear, default to English.")
	}

	return strings.Join(parts, " \n")
}

// GenerateReply 向外部模型发起一次带超时的生成请求
// 返回裁剪后的首个结果文本；模型没产出时返回空串。
// 超时只放弃等待，迟到的结果由调用方的派发守卫丢弃。
func (s *LLMService) GenerateReply(ctx context.Context, req ReplyRequest) (string, error) {
	s.providerMutex.RLock()
	provider := s.provider
	ready := s.isReady
	s.providerMutex.RUnlock()

	if provider == nil || !ready {
		return "", ErrLLMNotReady
	}

	timeout := s.ReplyTimeout()
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := provider.CompleteText(callCtx, llm.CompletionRequest{
		Prompt:       req.UserText,
		SystemPrompt: s.BuildSystemPrompt(req.Agent, req.TargetLanguage),
		Temperature:  0.8,
		TopP:         0.9,
		MaxTokens:    160,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w (超过 %s)", ErrModelTimeout, timeout)
		}
		return "", err
	}

	// 引擎出过一次结果就算热了，后续改用短预算
	s.warmMutex.Lock()
	s.warmed = true
	s.warmMutex.Unlock()

	utils.GetLogger().Debug("model reply generated", map[string]interface{}{
		"provider": s.providerName,
		"elapsed":  time.Since(start).String(),
	})

	return strings.TrimSpace(resp.Text), nil
}
