// internal/services/llm_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lunaria-ai/lunaria/internal/llm"
	"github.com/lunaria-ai/lunaria/internal/models"
)

// fakeProvider 测试用的模型提供者
type fakeProvider struct {
	name  string
	reply string
	delay time.Duration
	err   error
}

func (p *fakeProvider) Initialize(config map[string]string) error { return nil }
func (p *fakeProvider) GetName() string                           { return p.name }
func (p *fakeProvider) GetSupportedModels() []string              { return []string{"fake-model"} }

func (p *fakeProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &llm.CompletionResponse{Text: p.reply, ProviderName: p.name}, nil
}

func init() {
	llm.Register("fake-echo", func() llm.Provider {
		return &fakeProvider{name: "fake-echo", reply: "I was just thinking about you!"}
	})
	llm.Register("fake-slow", func() llm.Provider {
		return &fakeProvider{name: "fake-slow", reply: "too late", delay: 500 * time.Millisecond}
	})
	llm.Register("fake-broken", func() llm.Provider {
		return &fakeProvider{name: "fake-broken", err: errors.New("engine crashed")}
	})
}

func testAgent() *models.Agent {
	return &models.Agent{
		ID:          "lia",
		Name:        "Lia",
		Personality: models.PersonalityCutePlayful,
		Description: "Sweet, bubbly, and full of energy.",
		Traits:      []string{"Adorable", "Energetic"},
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	svc := NewLLMService()
	agent := testAgent()

	prompt := svc.BuildSystemPrompt(agent, "")
	if !strings.Contains(prompt, "You are Lia") {
		t.Errorf("系统指令应包含角色名: %s", prompt)
	}
	if !strings.Contains(prompt, string(models.PersonalityCutePlayful)) {
		t.Errorf("系统指令应包含人格: %s", prompt)
	}
	if !strings.Contains(prompt, "Adorable, Energetic") {
		t.Errorf("系统指令应包含特质: %s", prompt)
	}
	if !strings.Contains(prompt, "language the user used") {
		t.Errorf("未指定语言时应跟随用户语言: %s", prompt)
	}

	withLang := svc.BuildSystemPrompt(agent, "Hindi")
	if !strings.Contains(withLang, "Reply in Hindi") {
		t.Errorf("指定语言后系统指令应包含语言要求: %s", withLang)
	}
}

func TestGenerateReplySuccess(t *testing.T) {
	svc := NewLLMService()
	if err := svc.UpdateProvider("fake-echo", nil); err != nil {
		t.Fatalf("切换提供者失败: %v", err)
	}
	svc.SetTimeouts(time.Second, time.Second)

	text, err := svc.GenerateReply(context.Background(), ReplyRequest{
		Agent:    testAgent(),
		UserText: "hello there",
	})
	if err != nil {
		t.Fatalf("生成回复失败: %v", err)
	}
	if text != "I was just thinking about you!" {
		t.Errorf("回复内容不符: %s", text)
	}
}

func TestGenerateReplyWarmTransition(t *testing.T) {
	svc := NewLLMService()
	if err := svc.UpdateProvider("fake-echo", nil); err != nil {
		t.Fatalf("切换提供者失败: %v", err)
	}
	svc.SetTimeouts(90*time.Second, 8*time.Second)

	// 首次调用前处于冷态，采用长预算
	if got := svc.ReplyTimeout(); got != 90*time.Second {
		t.Errorf("冷态预算应为90s，实际 %s", got)
	}

	if _, err := svc.GenerateReply(context.Background(), ReplyRequest{Agent: testAgent(), UserText: "hi"}); err != nil {
		t.Fatalf("生成回复失败: %v", err)
	}

	// 成功一次后转为热态，改用短预算
	if got := svc.ReplyTimeout(); got != 8*time.Second {
		t.Errorf("热态预算应为8s，实际 %s", got)
	}
}

func TestGenerateReplyTimeout(t *testing.T) {
	svc := NewLLMService()
	if err := svc.UpdateProvider("fake-slow", nil); err != nil {
		t.Fatalf("切换提供者失败: %v", err)
	}
	svc.SetTimeouts(30*time.Millisecond, 30*time.Millisecond)

	_, err := svc.GenerateReply(context.Background(), ReplyRequest{Agent: testAgent(), UserText: "hi"})
	if !errors.Is(err, ErrModelTimeout) {
		t.Errorf("超出预算应返回 ErrModelTimeout，实际 %v", err)
	}

	// 超时不算成功，仍处于冷态
	if got := svc.ReplyTimeout(); got != 30*time.Millisecond {
		t.Errorf("超时后预算不应变化，实际 %s", got)
	}
}

func TestGenerateReplyProviderError(t *testing.T) {
	svc := NewLLMService()
	if err := svc.UpdateProvider("fake-broken", nil); err != nil {
		t.Fatalf("切换提供者失败: %v", err)
	}
	svc.SetTimeouts(time.Second, time.Second)

	_, err := svc.GenerateReply(context.Background(), ReplyRequest{Agent: testAgent(), UserText: "hi"})
	if err == nil {
		t.Fatal("提供者出错时应返回错误")
	}
	if errors.Is(err, ErrModelTimeout) {
		t.Errorf("非超时错误不应包装成 ErrModelTimeout: %v", err)
	}
}

func TestUpdateProviderUnknown(t *testing.T) {
	svc := NewLLMService()
	if err := svc.UpdateProvider("no-such-provider", nil); !errors.Is(err, llm.ErrUnknownProvider) {
		t.Errorf("未知提供者应返回 ErrUnknownProvider，实际 %v", err)
	}
	if svc.IsReady() {
		t.Error("切换到未知提供者后服务不应就绪")
	}
}
