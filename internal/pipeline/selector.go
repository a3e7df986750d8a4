// internal/pipeline/selector.go
package pipeline

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/lunaria-ai/lunaria/internal/lexicon"
	"github.com/lunaria-ai/lunaria/internal/models"
)

// Selector 模板回复选择器
// 随机源显式注入，测试时固定种子即可得到确定性选择。
// 回复周期跑在各自的goroutine上，rand.Rand 非并发安全，这里用互斥锁保护。
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector 创建模板选择器
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// SelectReply 为 (intent, persona) 选出一条模板回复并替换话题占位符
// 查找顺序：人格覆盖 -> 默认模板 -> 默认 casual 模板。
// 由于默认库覆盖全部意图（见 lexicon 的不变量），结果保证非空。
func (s *Selector) SelectReply(intent lexicon.Intent, persona models.Personality, topic string) string {
	candidates := resolveCandidates(intent, persona)

	s.mu.Lock()
	choice := candidates[s.rng.Intn(len(candidates))]
	s.mu.Unlock()

	if topic == "" {
		topic = FallbackTopic
	}
	return strings.ReplaceAll(choice, lexicon.TopicPlaceholder, topic)
}

// resolveCandidates 解析候选模板列表
func resolveCandidates(intent lexicon.Intent, persona models.Personality) []string {
	if overrides, ok := lexicon.PersonaTemplates[persona]; ok {
		if list, ok := overrides[intent]; ok && len(list) > 0 {
			return list
		}
	}

	if list, ok := lexicon.DefaultTemplates[intent]; ok && len(list) > 0 {
		return list
	}

	return lexicon.DefaultTemplates[lexicon.IntentCasual]
}
