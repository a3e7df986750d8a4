// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// 当前配置的单例实例
var (
	currentConfig *AppConfig
	configMutex   sync.RWMutex
	configFile    string
)

// AppConfig 包含应用程序的所有配置
type AppConfig struct {
	// 基础配置
	Port         string `json:"port"`
	DataDir      string `json:"data_dir"`
	StaticDir    string `json:"static_dir"`
	TemplatesDir string `json:"templates_dir"`
	LogDir       string `json:"log_dir"`
	DebugMode    bool   `json:"debug_mode"`

	// 聊天经济配置
	MessageCost    int `json:"message_cost"`    // 每条消息消耗的代币
	StartingTokens int `json:"starting_tokens"` // 新会话/新用户初始余额

	// 模型模式配置
	ModelMode    bool              `json:"model_mode"` // 默认是否走模型路径
	LLMProvider  string            `json:"llm_provider"`
	LLMConfig    map[string]string `json:"llm_config"`
	ColdTimeout  Duration          `json:"cold_timeout"` // 引擎未就绪时的首次调用预算
	WarmTimeout  Duration          `json:"warm_timeout"` // 引擎已就绪后的调用预算
	TypingDelayMinMS int           `json:"typing_delay_min_ms"` // 模拟输入延迟下界
	TypingDelayMaxMS int           `json:"typing_delay_max_ms"` // 模拟输入延迟上界
}

// Duration 让 time.Duration 以 "30s" 这类字符串形式出现在 JSON 里
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Load 从环境变量加载基础配置
func Load() (*AppConfig, error) {
	// 尝试加载.env文件（可选）
	godotenv.Load()

	config := &AppConfig{
		Port:             getEnv("PORT", "8080"),
		DataDir:          getEnvPath("DATA_DIR", "data"),
		StaticDir:        getEnvPath("STATIC_DIR", "web/static"),
		TemplatesDir:     getEnvPath("TEMPLATES_DIR", "web/templates"),
		LogDir:           getEnvPath("LOG_DIR", "logs"),
		DebugMode:        getEnvBool("DEBUG_MODE", true),
		MessageCost:      getEnvInt("MESSAGE_COST", 2),
		StartingTokens:   getEnvInt("STARTING_TOKENS", 100),
		ModelMode:        getEnvBool("MODEL_MODE", false),
		LLMProvider:      getEnv("LLM_PROVIDER", "ollama"),
		ColdTimeout:      Duration(getEnvDuration("MODEL_COLD_TIMEOUT", 90*time.Second)),
		WarmTimeout:      Duration(getEnvDuration("MODEL_WARM_TIMEOUT", 8*time.Second)),
		TypingDelayMinMS: getEnvInt("TYPING_DELAY_MIN_MS", 600),
		TypingDelayMaxMS: getEnvInt("TYPING_DELAY_MAX_MS", 1800),
		LLMConfig: map[string]string{
			"api_key":       getEnv("LLM_API_KEY", ""),
			"base_url":      getEnv("LLM_BASE_URL", ""),
			"default_model": getEnv("LLM_MODEL", ""),
		},
	}

	if config.ModelMode && config.LLMProvider != "ollama" && config.LLMConfig["api_key"] == "" {
		// 只记录警告，不返回错误：模板路径始终可用
		log.Println("警告: 启用了模型模式但未配置API密钥，将回落到模板回复")
	}

	return config, nil
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvPath 获取环境变量表示的路径，如果不存在则返回默认值
func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	// 确保目录存在
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("警告: 创建目录失败 %s: %v\n", path, err)
		}
	}

	return path
}

// getEnvBool 获取布尔类型环境变量
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt 获取整数类型环境变量
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration 获取时长类型环境变量
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig 初始化配置管理器
func InitConfig(dataDir string) error {
	configFile = filepath.Join(dataDir, "config.json")

	baseConfig, err := Load()
	if err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	currentConfig = baseConfig

	// 尝试从文件加载已保存的配置（保留LLM与经济设置，基础配置以环境为准）
	if _, err := os.Stat(configFile); !os.IsNotExist(err) {
		data, err := os.ReadFile(configFile)
		if err == nil {
			var savedConfig AppConfig
			if json.Unmarshal(data, &savedConfig) == nil {
				savedConfig.Port = baseConfig.Port
				savedConfig.DataDir = baseConfig.DataDir
				savedConfig.StaticDir = baseConfig.StaticDir
				savedConfig.TemplatesDir = baseConfig.TemplatesDir
				savedConfig.LogDir = baseConfig.LogDir
				savedConfig.DebugMode = baseConfig.DebugMode

				if savedConfig.LLMConfig != nil && savedConfig.LLMConfig["api_key"] == "" {
					savedConfig.LLMConfig["api_key"] = baseConfig.LLMConfig["api_key"]
				}
				if savedConfig.MessageCost <= 0 {
					savedConfig.MessageCost = baseConfig.MessageCost
				}
				if savedConfig.StartingTokens <= 0 {
					savedConfig.StartingTokens = baseConfig.StartingTokens
				}
				if savedConfig.ColdTimeout <= 0 {
					savedConfig.ColdTimeout = baseConfig.ColdTimeout
				}
				if savedConfig.WarmTimeout <= 0 {
					savedConfig.WarmTimeout = baseConfig.WarmTimeout
				}
				if savedConfig.TypingDelayMinMS <= 0 {
					savedConfig.TypingDelayMinMS = baseConfig.TypingDelayMinMS
				}
				if savedConfig.TypingDelayMaxMS <= 0 {
					savedConfig.TypingDelayMaxMS = baseConfig.TypingDelayMaxMS
				}

				currentConfig = &savedConfig
			}
		}
	}

	// 保存初始配置到文件
	return saveConfigLocked()
}

// GetCurrentConfig 返回当前配置的副本
func GetCurrentConfig() *AppConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if currentConfig == nil {
		// 紧急情况，返回一个基本配置
		baseConfig, _ := Load()
		return baseConfig
	}

	configCopy := *currentConfig
	return &configCopy
}

// UpdateLLMConfig 更新模型提供者配置
func UpdateLLMConfig(provider string, llmConfig map[string]string) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("配置系统未初始化")
	}

	currentConfig.LLMProvider = provider
	currentConfig.LLMConfig = llmConfig

	return saveConfigLocked()
}

// SetModelMode 更新默认的模型模式开关
func SetModelMode(enabled bool) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("配置系统未初始化")
	}

	currentConfig.ModelMode = enabled
	return saveConfigLocked()
}

// saveConfigLocked 保存当前配置到文件（调用方持有锁）
func saveConfigLocked() error {
	if currentConfig == nil {
		return fmt.Errorf("没有配置可保存")
	}

	dir := filepath.Dir(configFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建配置目录失败: %w", err)
		}
	}

	data, err := json.MarshalIndent(currentConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	return os.WriteFile(configFile, data, 0644)
}
