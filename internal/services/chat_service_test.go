// internal/services/chat_service_test.go
package services

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lunaria-ai/lunaria/internal/config"
	"github.com/lunaria-ai/lunaria/internal/models"
)

// newTestChatService 创建输入延迟为零、随机种子固定的会话服务
func newTestChatService(t *testing.T, llmService *LLMService) (*ChatService, *StatsService) {
	t.Helper()

	stats := NewStatsService(nil)
	rng := rand.New(rand.NewSource(42))
	svc := NewChatService(NewAgentService(), llmService, stats, rng, func() time.Duration { return 0 })
	return svc, stats
}

// waitForMessages 轮询会话直到消息数达到预期
func waitForMessages(t *testing.T, svc *ChatService, sessionID string, want int) *models.SessionSnapshot {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := svc.GetSession(sessionID)
		if err != nil {
			t.Fatalf("获取会话失败: %v", err)
		}
		if len(snap.Messages) >= want {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("等待回复超时，会话 %s 未达到 %d 条消息", sessionID, want)
	return nil
}

func TestOpenSessionSeedsGreeting(t *testing.T) {
	svc, _ := newTestChatService(t, nil)

	snap, err := svc.OpenSession("lia")
	if err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}

	if snap.Agent == nil || snap.Agent.ID != "lia" {
		t.Fatal("会话应绑定到指定角色")
	}
	if len(snap.Messages) != 1 {
		t.Fatalf("新会话应只有开场白，实际 %d 条", len(snap.Messages))
	}
	greeting := snap.Messages[0]
	if greeting.Role != models.RoleAgent {
		t.Errorf("开场白应来自角色，实际 %s", greeting.Role)
	}
	if !strings.Contains(greeting.Content, "Lia") {
		t.Errorf("开场白应包含角色名: %s", greeting.Content)
	}
	if snap.TokenBalance != config.GetCurrentConfig().StartingTokens {
		t.Errorf("初始余额不符: %d", snap.TokenBalance)
	}
}

func TestOpenSessionUnknownAgent(t *testing.T) {
	svc, _ := newTestChatService(t, nil)

	if _, err := svc.OpenSession("no-such-agent"); !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("未知角色应返回 ErrAgentNotFound，实际 %v", err)
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	svc, stats := newTestChatService(t, nil)

	snap, err := svc.OpenSession("lia")
	if err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}

	if _, err := svc.SendUserMessage(snap.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("空消息应返回 ErrEmptyMessage，实际 %v", err)
	}

	after, _ := svc.GetSession(snap.ID)
	if len(after.Messages) != 1 {
		t.Errorf("空消息不应进入历史，实际 %d 条", len(after.Messages))
	}
	if after.TokenBalance != snap.TokenBalance {
		t.Errorf("空消息不应扣费: %d -> %d", snap.TokenBalance, after.TokenBalance)
	}
	if stats.Snapshot().RejectedSends != 1 {
		t.Errorf("应记录一次拒绝，实际 %d", stats.Snapshot().RejectedSends)
	}
}

func TestSendRejectsInsufficientTokens(t *testing.T) {
	svc, stats := newTestChatService(t, nil)

	snap, err := svc.OpenSession("lia")
	if err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}

	// 把余额压到低于单条消息费用
	sess := svc.lookup(snap.ID)
	sess.mu.Lock()
	sess.data.TokenBalance = config.GetCurrentConfig().MessageCost - 1
	sess.mu.Unlock()

	if _, err := svc.SendUserMessage(snap.ID, "hello there"); !errors.Is(err, ErrInsufficientTokens) {
		t.Fatalf("余额不足应返回 ErrInsufficientTokens，实际 %v", err)
	}

	after, _ := svc.GetSession(snap.ID)
	if len(after.Messages) != 1 {
		t.Errorf("被拒绝的消息不应进入历史，实际 %d 条", len(after.Messages))
	}
	if after.TokenBalance != config.GetCurrentConfig().MessageCost-1 {
		t.Errorf("被拒绝的消息不应扣费，实际余额 %d", after.TokenBalance)
	}
	if after.AgentTyping {
		t.Error("被拒绝的消息不应触发输入中标志")
	}
	if stats.Snapshot().RejectedSends != 1 {
		t.Errorf("应记录一次拒绝，实际 %d", stats.Snapshot().RejectedSends)
	}
}

func TestReplyCycleTemplatePath(t *testing.T) {
	svc, stats := newTestChatService(t, nil)

	snap, err := svc.OpenSession("lia")
	if err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}

	msg, err := svc.SendUserMessage(snap.ID, "hello there")
	if err != nil {
		t.Fatalf("发送消息失败: %v", err)
	}
	if msg.Role != models.RoleUser || msg.Content != "hello there" {
		t.Errorf("返回的用户消息不符: %+v", msg)
	}

	after := waitForMessages(t, svc, snap.ID, 3)

	cost := config.GetCurrentConfig().MessageCost
	if after.TokenBalance != snap.TokenBalance-cost {
		t.Errorf("应扣除 %d 代币，余额 %d -> %d", cost, snap.TokenBalance, after.TokenBalance)
	}

	reply := after.Messages[2]
	if reply.Role != models.RoleAgent {
		t.Fatalf("第三条消息应是角色回复，实际 %s", reply.Role)
	}
	if strings.TrimSpace(reply.Content) == "" {
		t.Error("回复内容不应为空")
	}
	if after.AgentTyping {
		t.Error("回复送达后输入中标志应清除")
	}

	s := stats.Snapshot()
	if s.TemplateReplies != 1 || s.ModelReplies != 0 {
		t.Errorf("应记录一次模板回复: %+v", s)
	}
}

func TestReplyCycleModelPath(t *testing.T) {
	llmService := NewLLMService()
	if err := llmService.UpdateProvider("fake-echo", nil); err != nil {
		t.Fatalf("切换提供者失败: %v", err)
	}
	llmService.SetTimeouts(time.Second, time.Second)

	svc, stats := newTestChatService(t, llmService)

	snap, err := svc.OpenSession("nova")
	if err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}
	if err := svc.SetModelMode(snap.ID, true); err != nil {
		t.Fatalf("开启模型模式失败: %v", err)
	}

	if _, err := svc.SendUserMessage(snap.ID, "what are you thinking about?"); err != nil {
		t.Fatalf("发送消息失败: %v", err)
	}

	after := waitForMessages(t, svc, snap.ID, 3)
	reply := after.Messages[2]
	if !strings.Contains(reply.Content, "I was just thinking about you!") {
		t.Errorf("模型模式下应送达模型产出: %s", reply.Content)
	}

	s := stats.Snapshot()
	if s.ModelReplies != 1 || s.ModelFallbacks != 0 {
		t.Errorf("应记录一次模型回复: %+v", s)
	}
}

// 模型超出预算时回落到模板回复，且恰好送达一条
func TestReplyCycleModelTimeoutFallsBack(t *testing.T) {
	llmService := NewLLMService()
	if err := llmService.UpdateProvider("fake-slow", nil); err != nil {
		t.Fatalf("切换提供者失败: %v", err)
	}
	llmService.SetTimeouts(30*time.Millisecond, 30*time.Millisecond)

	svc, stats := newTestChatService(t, llmService)

	snap, err := svc.OpenSession("lia")
	if err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}
	if err := svc.SetModelMode(snap.ID, true); err != nil {
		t.Fatalf("开启模型模式失败: %v", err)
	}

	if _, err := svc.SendUserMessage(snap.ID, "tell me a secret"); err != nil {
		t.Fatalf("发送消息失败: %v", err)
	}

	after := waitForMessages(t, svc, snap.ID, 3)

	// 等慢速提供者的迟到结果跑完，确认不会追加第二条回复
	time.Sleep(600 * time.Millisecond)
	final, _ := svc.GetSession(snap.ID)
	if len(final.Messages) != 3 {
		t.Fatalf("超时回落后应恰好送达一条回复，实际 %d 条消息", len(final.Messages))
	}

	reply := after.Messages[2]
	if reply.Role != models.RoleAgent || strings.TrimSpace(reply.Content) == "" {
		t.Errorf("回落的模板回复无效: %+v", reply)
	}
	if strings.Contains(reply.Content, "too late") {
		t.Error("迟到的模型结果不应被送达")
	}

	s := stats.Snapshot()
	if s.TemplateReplies != 1 || s.ModelFallbacks != 1 {
		t.Errorf("应记录一次回落的模板回复: %+v", s)
	}
}

func TestDeliverGuard(t *testing.T) {
	svc, _ := newTestChatService(t, nil)

	snap, err := svc.OpenSession("eve")
	if err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}

	sess := svc.lookup(snap.ID)
	if !svc.deliver(sess, "cycle-1", "first") {
		t.Fatal("首次送达应成功")
	}
	if svc.deliver(sess, "cycle-1", "second") {
		t.Fatal("同一周期的第二次送达应被丢弃")
	}

	after, _ := svc.GetSession(snap.ID)
	if len(after.Messages) != 2 {
		t.Errorf("守卫失效，消息数 %d", len(after.Messages))
	}
}

func TestSetReplyLanguage(t *testing.T) {
	svc, _ := newTestChatService(t, nil)

	snap, _ := svc.OpenSession("mira")

	if err := svc.SetReplyLanguage(snap.ID, "Klingon"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("不支持的语言应返回 ErrUnknownLanguage，实际 %v", err)
	}

	if err := svc.SetReplyLanguage(snap.ID, "Hindi"); err != nil {
		t.Errorf("设置支持的语言失败: %v", err)
	}
	after, _ := svc.GetSession(snap.ID)
	if after.ReplyLanguage != "Hindi" {
		t.Errorf("回复语言未生效: %s", after.ReplyLanguage)
	}

	// 空串恢复 auto
	if err := svc.SetReplyLanguage(snap.ID, ""); err != nil {
		t.Errorf("恢复自动语言失败: %v", err)
	}
}

func TestAddTokens(t *testing.T) {
	svc, _ := newTestChatService(t, nil)

	snap, _ := svc.OpenSession("nyx")

	balance, err := svc.AddTokens(snap.ID, 50)
	if err != nil {
		t.Fatalf("充值失败: %v", err)
	}
	if balance != snap.TokenBalance+50 {
		t.Errorf("充值后余额不符: %d", balance)
	}

	if _, err := svc.AddTokens(snap.ID, 0); err == nil {
		t.Error("非正数充值应返回错误")
	}
}

func TestCloseSession(t *testing.T) {
	svc, _ := newTestChatService(t, nil)

	snap, _ := svc.OpenSession("aria")
	if err := svc.CloseSession(snap.ID); err != nil {
		t.Fatalf("关闭会话失败: %v", err)
	}
	if _, err := svc.GetSession(snap.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("关闭后的会话应不可见，实际 %v", err)
	}
	if err := svc.CloseSession(snap.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("重复关闭应返回 ErrSessionNotFound，实际 %v", err)
	}
}
