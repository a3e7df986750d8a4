// internal/services/agent_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/lunaria-ai/lunaria/internal/models"
)

var ErrAgentNotFound = errors.New("角色不存在")

// AgentService 提供伴侣角色目录
// 目录是静态参考数据：启动时定义一次，之后只读，按ID检索。
type AgentService struct {
	agents []models.Agent
	byID   map[string]*models.Agent
}

// NewAgentService 创建角色目录服务
func NewAgentService() *AgentService {
	s := &AgentService{
		agents: defaultAgents(),
	}

	s.byID = make(map[string]*models.Agent, len(s.agents))
	for i := range s.agents {
		s.byID[s.agents[i].ID] = &s.agents[i]
	}

	return s
}

// ListAgents 返回目录中的全部角色（保持定义顺序）
func (s *AgentService) ListAgents() []models.Agent {
	return s.agents
}

// GetAgent 按ID查找角色
func (s *AgentService) GetAgent(id string) (*models.Agent, error) {
	agent, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	return agent, nil
}

// GreetingFor 生成角色的开场白
func (s *AgentService) GreetingFor(agent *models.Agent) string {
	return fmt.Sprintf("Hey there! 💕 I'm %s. I'm so happy you're here to chat with me! How are you feeling today?", agent.Name)
}

// defaultAgents 内置角色目录
func defaultAgents() []models.Agent {
	return []models.Agent{
		{
			ID:          "lia",
			Name:        "Lia",
			Age:         22,
			Personality: models.PersonalityCutePlayful,
			Description: "Sweet, bubbly, and full of energy. Lia loves making you smile and always knows how to brighten your day.",
			Traits:      []string{"Adorable", "Energetic", "Optimistic", "Romantic"},
			Theme:       "from-pink-500 to-rose-400",
			VoiceModel:  "cute_voice",
		},
		{
			ID:          "aria",
			Name:        "Aria",
			Age:         24,
			Personality: models.PersonalityBoldConfident,
			Description: "Fierce and fearless, Aria knows what she wants and isn't afraid to go after it. She'll challenge you in the best way.",
			Traits:      []string{"Confident", "Passionate", "Direct", "Ambitious"},
			Theme:       "from-purple-500 to-pink-500",
			VoiceModel:  "bold_voice",
		},
		{
			ID:          "mira",
			Name:        "Mira",
			Age:         23,
			Personality: models.PersonalityRomanticDreamy,
			Description: "A hopeless romantic who believes in true love. Mira will make every conversation feel like poetry.",
			Traits:      []string{"Gentle", "Poetic", "Thoughtful", "Affectionate"},
			Theme:       "from-rose-400 to-pink-300",
			VoiceModel:  "romantic_voice",
		},
		{
			ID:          "nova",
			Name:        "Nova",
			Age:         25,
			Personality: models.PersonalityMysterious,
			Description: "There's always something enigmatic about Nova. She keeps you guessing and coming back for more.",
			Traits:      []string{"Mysterious", "Intelligent", "Sophisticated", "Alluring"},
			Theme:       "from-purple-600 to-indigo-500",
			VoiceModel:  "mysterious_voice",
		},
		{
			ID:          "eve",
			Name:        "Eve",
			Age:         21,
			Personality: models.PersonalityFlirtyFun,
			Description: "Life of the party, Eve knows how to keep things exciting. She's always up for some playful banter.",
			Traits:      []string{"Flirty", "Spontaneous", "Witty", "Charming"},
			Theme:       "from-fuchsia-500 to-pink-500",
			VoiceModel:  "flirty_voice",
		},
		{
			ID:          "nyx",
			Name:        "Nyx",
			Age:         26,
			Personality: models.PersonalityDeepThoughtful,
			Description: "Nyx loves meaningful conversations and connecting on a deeper level. She's the perfect late-night companion.",
			Traits:      []string{"Thoughtful", "Empathetic", "Wise", "Intimate"},
			Theme:       "from-violet-600 to-purple-500",
			VoiceModel:  "deep_voice",
		},
	}
}
