// internal/api/handlers.go
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/lexicon"
	"github.com/lunaria-ai/lunaria/internal/llm"
	"github.com/lunaria-ai/lunaria/internal/services"
)

// Handler 处理API请求
type Handler struct {
	AgentService *services.AgentService // 角色目录服务
	ChatService  *services.ChatService  // 会话与回复编排服务
	LLMService   *services.LLMService   // 模型适配服务
	StatsService *services.StatsService // 统计服务
	UserService  *services.UserService  // 用户服务
	TokenService *services.TokenService // 代币商店服务
	Hub          *SessionHub            // WebSocket 连接管理器
	Response     *ResponseHelper        // 响应助手
}

// NewHandler 创建API处理器
func NewHandler(
	agentService *services.AgentService,
	chatService *services.ChatService,
	llmService *services.LLMService,
	statsService *services.StatsService,
	userService *services.UserService,
	tokenService *services.TokenService,
) *Handler {
	return &Handler{
		AgentService: agentService,
		ChatService:  chatService,
		LLMService:   llmService,
		StatsService: statsService,
		UserService:  userService,
		TokenService: tokenService,
		Hub:          NewSessionHub(),
		Response:     NewResponseHelper(),
	}
}

// CreateSessionRequest 开启会话的请求结构
type CreateSessionRequest struct {
	AgentID string `json:"agent_id" binding:"required"`
}

// SendMessageRequest 发送消息的请求结构
type SendMessageRequest struct {
	Content string `json:"content"`
}

// ModelModeRequest 切换模型模式的请求结构
type ModelModeRequest struct {
	Enabled bool `json:"enabled"`
}

// LanguageRequest 设置回复语言的请求结构
type LanguageRequest struct {
	Language string `json:"language"`
}

// TopUpRequest 会话充值的请求结构
type TopUpRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

// PurchaseRequest 商店购买的请求结构
type PurchaseRequest struct {
	Username  string `json:"username" binding:"required"`
	PackageID string `json:"package_id" binding:"required"`
}

// RegisterRequest 用户注册的请求结构
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
}

// LoginRequest 用户登录的请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpdateLLMConfigRequest 模型配置更新的请求结构
type UpdateLLMConfigRequest struct {
	Provider string            `json:"provider" binding:"required"`
	Config   map[string]string `json:"config"`
}

// ========================================
// 页面处理器
// ========================================

// IndexPage 首页（角色选择）
func (h *Handler) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Agents": h.AgentService.ListAgents(),
	})
}

// ChatPage 聊天页面
func (h *Handler) ChatPage(c *gin.Context) {
	agent, err := h.AgentService.GetAgent(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "chat.html", gin.H{
		"Agent": agent,
	})
}

// ========================================
// 角色目录
// ========================================

// GetAgents 返回全部伴侣角色
func (h *Handler) GetAgents(c *gin.Context) {
	h.Response.Success(c, h.AgentService.ListAgents())
}

// GetAgent 返回单个角色
func (h *Handler) GetAgent(c *gin.Context) {
	agent, err := h.AgentService.GetAgent(c.Param("id"))
	if err != nil {
		h.Response.NotFound(c, ErrorAgentNotFound, "角色不存在", err.Error())
		return
	}
	h.Response.Success(c, agent)
}

// ========================================
// 会话管理
// ========================================

// CreateSession 开启新会话
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	snapshot, err := h.ChatService.OpenSession(req.AgentID)
	if err != nil {
		if errors.Is(err, services.ErrAgentNotFound) {
			h.Response.NotFound(c, ErrorAgentNotFound, "角色不存在", err.Error())
			return
		}
		h.Response.InternalError(c, "开启会话失败", err.Error())
		return
	}

	h.Response.Created(c, snapshot, "会话已开启")
}

// GetSession 返回会话快照
func (h *Handler) GetSession(c *gin.Context) {
	snapshot, err := h.ChatService.GetSession(c.Param("id"))
	if err != nil {
		h.Response.NotFound(c, ErrorSessionNotFound, "会话不存在", err.Error())
		return
	}
	h.Response.Success(c, snapshot)
}

// CloseSession 关闭会话
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.ChatService.CloseSession(c.Param("id")); err != nil {
		h.Response.NotFound(c, ErrorSessionNotFound, "会话不存在", err.Error())
		return
	}
	h.Response.Success(c, nil, "会话已关闭")
}

// SendMessage 向会话发送用户消息
// 接受后立即返回，回复通过轮询快照或WebSocket推送获取。
func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	msg, err := h.ChatService.SendUserMessage(c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			h.Response.NotFound(c, ErrorSessionNotFound, "会话不存在", err.Error())
		case errors.Is(err, services.ErrEmptyMessage):
			h.Response.Error(c, http.StatusBadRequest, ErrorEmptyMessage, "消息内容为空")
		case errors.Is(err, services.ErrInsufficientTokens):
			h.Response.PaymentRequired(c, "代币余额不足", err.Error())
		default:
			h.Response.InternalError(c, "发送消息失败", err.Error())
		}
		return
	}

	h.Response.Success(c, msg, "消息已接受")
}

// SetModelMode 切换会话的模型回复开关
func (h *Handler) SetModelMode(c *gin.Context) {
	var req ModelModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	if err := h.ChatService.SetModelMode(c.Param("id"), req.Enabled); err != nil {
		h.Response.NotFound(c, ErrorSessionNotFound, "会话不存在", err.Error())
		return
	}

	h.Response.Success(c, gin.H{"model_mode": req.Enabled})
}

// SetReplyLanguage 设置会话的回复语言
func (h *Handler) SetReplyLanguage(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	if err := h.ChatService.SetReplyLanguage(c.Param("id"), req.Language); err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			h.Response.NotFound(c, ErrorSessionNotFound, "会话不存在", err.Error())
		case errors.Is(err, services.ErrUnknownLanguage):
			h.Response.Error(c, http.StatusBadRequest, ErrorUnknownLanguage, "不支持的回复语言", err.Error())
		default:
			h.Response.InternalError(c, "设置回复语言失败", err.Error())
		}
		return
	}

	h.Response.Success(c, gin.H{"reply_language": req.Language})
}

// TopUpSession 用商店套餐给会话余额充值
func (h *Handler) TopUpSession(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	pkg, err := h.TokenService.GetPackage(req.PackageID)
	if err != nil {
		h.Response.NotFound(c, ErrorPackageNotFound, "代币套餐不存在", err.Error())
		return
	}

	balance, err := h.ChatService.AddTokens(c.Param("id"), pkg.Tokens+pkg.Bonus)
	if err != nil {
		h.Response.NotFound(c, ErrorSessionNotFound, "会话不存在", err.Error())
		return
	}

	h.Response.Success(c, gin.H{
		"package":       pkg.ID,
		"tokens_added":  pkg.Tokens + pkg.Bonus,
		"token_balance": balance,
	}, "充值成功")
}

// GetLanguages 返回支持的回复语言列表
func (h *Handler) GetLanguages(c *gin.Context) {
	h.Response.Success(c, lexicon.SupportedLanguages())
}

// ========================================
// 代币商店
// ========================================

// GetPackages 返回商店套餐列表
func (h *Handler) GetPackages(c *gin.Context) {
	h.Response.Success(c, h.TokenService.ListPackages())
}

// Purchase 模拟购买：给用户账户入账
func (h *Handler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	receipt, err := h.TokenService.Purchase(req.Username, req.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPackageNotFound):
			h.Response.NotFound(c, ErrorPackageNotFound, "代币套餐不存在", err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			h.Response.NotFound(c, ErrorUserNotFound, "用户不存在", err.Error())
		default:
			h.Response.InternalError(c, "购买失败", err.Error())
		}
		return
	}

	h.Response.Created(c, receipt, "购买成功")
}

// ========================================
// 用户与登录
// ========================================

// RegisterUser 注册新用户
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	user, err := h.UserService.Register(req.Username, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			h.Response.Conflict(c, ErrorUserExists, "用户名已被占用", err.Error())
			return
		}
		h.Response.InternalError(c, "注册失败", err.Error())
		return
	}

	h.Response.Created(c, user, "注册成功")
}

// LoginUser 登录并颁发会话令牌
func (h *Handler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	user, session, err := h.UserService.Login(req.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.Response.NotFound(c, ErrorUserNotFound, "用户不存在", err.Error())
			return
		}
		h.Response.InternalError(c, "登录失败", err.Error())
		return
	}

	h.Response.Success(c, gin.H{
		"user":       user,
		"token":      session.Token,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}, "登录成功")
}

// CurrentUser 根据令牌返回当前登录用户
func (h *Handler) CurrentUser(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		h.Response.Unauthorized(c, "缺少登录令牌")
		return
	}

	user, err := h.UserService.Resolve(token)
	if err != nil {
		h.Response.Unauthorized(c, "登录令牌无效或已过期", err.Error())
		return
	}

	h.Response.Success(c, user)
}

// ========================================
// 模型服务
// ========================================

// GetLLMStatus 返回模型服务的就绪状态
func (h *Handler) GetLLMStatus(c *gin.Context) {
	ready, status := h.LLMService.GetProviderStatus()
	h.Response.Success(c, gin.H{
		"ready":         ready,
		"status":        status,
		"reply_timeout": h.LLMService.ReplyTimeout().String(),
		"providers":     llm.ListProviders(),
	})
}

// GetLLMModels 返回各提供者支持的模型
func (h *Handler) GetLLMModels(c *gin.Context) {
	result := make(map[string][]string)
	for _, name := range llm.ListProviders() {
		result[name] = llm.GetSupportedModelsForProvider(name)
	}
	h.Response.Success(c, result)
}

// UpdateLLMConfig 切换模型提供者并持久化配置
func (h *Handler) UpdateLLMConfig(c *gin.Context) {
	var req UpdateLLMConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求格式错误", err.Error())
		return
	}

	if err := h.LLMService.UpdateProvider(req.Provider, req.Config); err != nil {
		h.Response.Error(c, http.StatusBadRequest, ErrorLLMConfigInvalid, "模型配置无效", err.Error())
		return
	}

	if err := config.UpdateLLMConfig(req.Provider, req.Config); err != nil {
		h.Response.InternalError(c, "保存模型配置失败", err.Error())
		return
	}

	ready, status := h.LLMService.GetProviderStatus()
	h.Response.Success(c, gin.H{"ready": ready, "status": status}, "模型配置已更新")
}

// ========================================
// 统计与调试
// ========================================

// GetStats 返回使用统计
func (h *Handler) GetStats(c *gin.Context) {
	h.Response.Success(c, h.StatsService.Snapshot())
}

// GetWebSocketStatus 返回 WebSocket 连接状态（调试用）
func (h *Handler) GetWebSocketStatus(c *gin.Context) {
	h.Response.Success(c, h.Hub.Status())
}

// SessionWebSocket 订阅会话的实时推送
func (h *Handler) SessionWebSocket(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := h.ChatService.GetSession(sessionID); err != nil {
		h.Response.NotFound(c, ErrorSessionNotFound, "会话不存在", err.Error())
		return
	}

	h.Hub.ServeSession(c, sessionID)
}
