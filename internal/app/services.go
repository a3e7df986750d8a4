// internal/app/services.go
package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/di"
	"github.com/lunaria-ai/lunaria/internal/services"
	"github.com/lunaria-ai/lunaria/internal/storage"
)

// InitServices 按依赖顺序初始化所有服务并注册到容器
// 存储在最底层，编排服务在最后：它依赖目录、模型和统计服务。
func InitServices() error {
	cfg := config.GetCurrentConfig()
	if cfg == nil {
		return fmt.Errorf("配置未初始化")
	}

	container := di.GetContainer()

	fileStorage, err := storage.NewFileStorage(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("初始化文件存储失败: %w", err)
	}
	container.Register("storage", fileStorage)

	agentService := services.NewAgentService()
	container.Register("agent", agentService)

	// 模型服务初始化失败也返回可用实例（未就绪），模板路径不受影响
	llmService := services.NewLLMService()
	container.Register("llm", llmService)

	statsService := services.NewStatsService(fileStorage)
	container.Register("stats", statsService)

	userService := services.NewUserService(fileStorage)
	container.Register("user", userService)

	tokenService := services.NewTokenService(userService, fileStorage)
	container.Register("token", tokenService)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	chatService := services.NewChatService(agentService, llmService, statsService, rng, nil)
	container.Register("chat", chatService)

	return nil
}
