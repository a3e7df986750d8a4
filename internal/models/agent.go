// internal/models/agent.go
package models

// Personality 人格标签（固定枚举，与回复模板库对应）
type Personality string

const (
	PersonalityCutePlayful       Personality = "Cute & Playful"
	PersonalityBoldConfident     Personality = "Bold & Confident"
	PersonalityRomanticDreamy    Personality = "Romantic & Dreamy"
	PersonalityMysterious        Personality = "Mysterious & Intriguing"
	PersonalityFlirtyFun         Personality = "Flirty & Fun"
	PersonalityDeepThoughtful    Personality = "Deep & Thoughtful"
)

// Agent 表示一个AI伴侣角色档案
// 静态参考数据：进程启动时定义一次，之后只读
type Agent struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Personality Personality `json:"personality"`
	Description string      `json:"description"`
	Traits      []string    `json:"traits"`
	Theme       string      `json:"theme"`
	VoiceModel  string      `json:"voice_model,omitempty"`
}
