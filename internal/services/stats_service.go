// internal/services/stats_service.go
package services

import (
	"sync"
	"time"

	"github.com/lunaria-ai/lunaria/internal/storage"
	"github.com/lunaria-ai/lunaria/internal/utils"
)

// UsageStats 累积使用统计
type UsageStats struct {
	MessagesSent    int       `json:"messages_sent"`
	TemplateReplies int       `json:"template_replies"`
	ModelReplies    int       `json:"model_replies"`
	ModelFallbacks  int       `json:"model_fallbacks"`
	TokensSpent     int       `json:"tokens_spent"`
	RejectedSends   int       `json:"rejected_sends"`
	LastUpdated     time.Time `json:"last_updated"`
}

// StatsService 维护并落盘使用统计
type StatsService struct {
	mu      sync.Mutex
	stats   UsageStats
	storage *storage.FileStorage
}

const statsFile = "stats.json"

// NewStatsService 创建统计服务并加载历史数据
func NewStatsService(fs *storage.FileStorage) *StatsService {
	s := &StatsService{storage: fs}

	if fs != nil && fs.FileExists("", statsFile) {
		if err := fs.LoadJSON("", statsFile, &s.stats); err != nil {
			utils.GetLogger().Warn("加载统计数据失败，从零开始", map[string]interface{}{"error": err.Error()})
			s.stats = UsageStats{}
		}
	}

	return s
}

// RecordSend 记录一次接受的用户发送
func (s *StatsService) RecordSend(cost int) {
	s.mu.Lock()
	s.stats.MessagesSent++
	s.stats.TokensSpent += cost
	s.mu.Unlock()
	s.persist()
}

// RecordRejected 记录一次被拒绝的发送
func (s *StatsService) RecordRejected() {
	s.mu.Lock()
	s.stats.RejectedSends++
	s.mu.Unlock()
	s.persist()
}

// RecordReply 记录一次送达的回复
func (s *StatsService) RecordReply(usedModel, fellBack bool) {
	s.mu.Lock()
	if usedModel {
		s.stats.ModelReplies++
	} else {
		s.stats.TemplateReplies++
	}
	if fellBack {
		s.stats.ModelFallbacks++
	}
	s.mu.Unlock()
	s.persist()
}

// Snapshot 返回统计副本
func (s *StatsService) Snapshot() UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *StatsService) persist() {
	if s.storage == nil {
		return
	}

	s.mu.Lock()
	s.stats.LastUpdated = time.Now()
	snapshot := s.stats
	s.mu.Unlock()

	if err := s.storage.SaveJSON("", statsFile, snapshot); err != nil {
		utils.GetLogger().Warn("保存统计数据失败", map[string]interface{}{"error": err.Error()})
	}
}
