// internal/services/agent_service_test.go
package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/lunaria-ai/lunaria/internal/lexicon"
	"github.com/lunaria-ai/lunaria/internal/models"
)

func TestAgentCatalog(t *testing.T) {
	svc := NewAgentService()

	agents := svc.ListAgents()
	if len(agents) != 6 {
		t.Fatalf("角色目录应有6个角色，实际 %d", len(agents))
	}

	seen := make(map[string]bool)
	for _, agent := range agents {
		if agent.ID == "" || agent.Name == "" {
			t.Errorf("角色缺少ID或名字: %+v", agent)
		}
		if seen[agent.ID] {
			t.Errorf("角色ID重复: %s", agent.ID)
		}
		seen[agent.ID] = true

		if len(agent.Traits) == 0 {
			t.Errorf("角色 %s 缺少特质", agent.ID)
		}

		// 每个人格都要有对应的模板集（直接命中或回落到默认集）
		if _, ok := lexicon.PersonaTemplates[agent.Personality]; !ok {
			if agent.Personality != models.PersonalityCutePlayful && agent.Personality != models.PersonalityRomanticDreamy {
				t.Errorf("角色 %s 的人格 %q 没有模板覆盖", agent.ID, agent.Personality)
			}
		}
	}
}

func TestGetAgent(t *testing.T) {
	svc := NewAgentService()

	agent, err := svc.GetAgent("lia")
	if err != nil {
		t.Fatalf("查找已知角色失败: %v", err)
	}
	if agent.Name != "Lia" {
		t.Errorf("角色名不符: %s", agent.Name)
	}

	if _, err := svc.GetAgent("unknown"); !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("未知角色应返回 ErrAgentNotFound，实际 %v", err)
	}
}

func TestGreetingFor(t *testing.T) {
	svc := NewAgentService()

	for _, agent := range svc.ListAgents() {
		greeting := svc.GreetingFor(&agent)
		if !strings.Contains(greeting, agent.Name) {
			t.Errorf("开场白应包含角色名 %s: %s", agent.Name, greeting)
		}
	}
}
