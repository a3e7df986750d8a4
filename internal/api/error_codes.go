// internal/api/error_codes.go
package api

// API错误代码常量
const (
	// 通用错误
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorNotFound      = "NOT_FOUND"
	ErrorInternalError = "INTERNAL_ERROR"
	ErrorConflict      = "CONFLICT"
	ErrorUnauthorized  = "UNAUTHORIZED"

	// 会话相关错误
	ErrorSessionNotFound    = "SESSION_NOT_FOUND"
	ErrorEmptyMessage       = "EMPTY_MESSAGE"
	ErrorInsufficientTokens = "INSUFFICIENT_TOKENS"
	ErrorUnknownLanguage    = "LANGUAGE_UNSUPPORTED"

	// 角色相关错误
	ErrorAgentNotFound = "AGENT_NOT_FOUND"

	// 商店相关错误
	ErrorPackageNotFound = "PACKAGE_NOT_FOUND"

	// 用户相关错误
	ErrorUserNotFound = "USER_NOT_FOUND"
	ErrorUserExists   = "USER_EXISTS"

	// LLM服务相关错误
	ErrorLLMServiceUnavailable = "LLM_SERVICE_UNAVAILABLE"
	ErrorLLMConfigInvalid      = "LLM_CONFIG_INVALID"

	// 限流
	ErrorRateLimited = "RATE_LIMIT_EXCEEDED"
)
