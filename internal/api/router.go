// internal/api/router.go
package api

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/di"
	"github.com/lunaria-ai/lunaria/internal/services"
)

// SetupRouter 配置HTTP路由
// 只从容器获取服务，不在路由层创建实例。
func SetupRouter() (*gin.Engine, error) {
	cfg := config.GetCurrentConfig()
	container := di.GetContainer()

	agentService, ok := container.Get("agent").(*services.AgentService)
	if !ok {
		return nil, fmt.Errorf("角色服务未正确初始化")
	}

	chatService, ok := container.Get("chat").(*services.ChatService)
	if !ok {
		return nil, fmt.Errorf("会话服务未正确初始化")
	}

	llmService, ok := container.Get("llm").(*services.LLMService)
	if !ok {
		return nil, fmt.Errorf("模型服务未正确初始化")
	}

	statsService, ok := container.Get("stats").(*services.StatsService)
	if !ok {
		return nil, fmt.Errorf("统计服务未正确初始化")
	}

	userService, ok := container.Get("user").(*services.UserService)
	if !ok {
		return nil, fmt.Errorf("用户服务未正确初始化")
	}

	tokenService, ok := container.Get("token").(*services.TokenService)
	if !ok {
		return nil, fmt.Errorf("商店服务未正确初始化")
	}

	handler := NewHandler(
		agentService,
		chatService,
		llmService,
		statsService,
		userService,
		tokenService,
	)

	// 回复送达与输入中标志通过 WebSocket 推送
	chatService.SetNotifier(handler.Hub)

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())

	// 静态文件与页面模板
	r.Static("/static", cfg.StaticDir)

	templates, err := filepath.Glob(filepath.Join(cfg.TemplatesDir, "*.html"))
	if err == nil && len(templates) > 0 {
		r.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))

		// ===============================
		// 页面路由
		// ===============================
		r.GET("/", handler.IndexPage)
		r.GET("/chat/:id", handler.ChatPage)
	}

	// WebSocket 支持
	r.GET("/ws/sessions/:id", handler.SessionWebSocket)

	// ===============================
	// API路由组
	// ===============================
	api := r.Group("/api")
	api.Use(DefaultRateLimit())
	{
		// ===============================
		// 角色目录
		// ===============================
		agentsGroup := api.Group("/agents")
		{
			agentsGroup.GET("", handler.GetAgents)
			agentsGroup.GET("/:id", handler.GetAgent)
		}

		// ===============================
		// 会话相关路由
		// ===============================
		sessionsGroup := api.Group("/sessions")
		{
			sessionsGroup.POST("", handler.CreateSession)
			sessionsGroup.GET("/:id", handler.GetSession)
			sessionsGroup.DELETE("/:id", handler.CloseSession)
			sessionsGroup.POST("/:id/messages", SendRateLimit(), handler.SendMessage)
			sessionsGroup.PUT("/:id/model-mode", handler.SetModelMode)
			sessionsGroup.PUT("/:id/language", handler.SetReplyLanguage)
			sessionsGroup.POST("/:id/topup", handler.TopUpSession)
		}

		// ===============================
		// 代币商店
		// ===============================
		shopGroup := api.Group("/shop")
		{
			shopGroup.GET("/packages", handler.GetPackages)
			shopGroup.POST("/purchase", handler.Purchase)
		}

		// ===============================
		// 用户与登录
		// ===============================
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handler.RegisterUser)
			authGroup.POST("/login", handler.LoginUser)
			authGroup.GET("/me", handler.CurrentUser)
		}

		// ===============================
		// 模型服务配置
		// ===============================
		llmGroup := api.Group("/llm")
		{
			llmGroup.GET("/status", handler.GetLLMStatus)
			llmGroup.GET("/models", handler.GetLLMModels)
			llmGroup.PUT("/config", handler.UpdateLLMConfig)
		}

		// 支持的回复语言
		api.GET("/languages", handler.GetLanguages)

		// 统计与调试
		api.GET("/stats", handler.GetStats)
		api.GET("/ws/status", handler.GetWebSocketStatus)
	}

	return r, nil
}
