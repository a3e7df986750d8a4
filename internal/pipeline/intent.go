// internal/pipeline/intent.go
package pipeline

import (
	"strings"

	"github.com/lunaria-ai/lunaria/internal/lexicon"
)

// ClassifyIntent 对用户输入做意图分类
// 按 lexicon.IntentPriority 的固定顺序逐组匹配，第一个命中的意图胜出；
// 全部未命中返回 IntentCasual。总函数，相同输入必得相同结果。
func ClassifyIntent(text string) lexicon.Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return lexicon.IntentCasual
	}

	for _, intent := range lexicon.IntentPriority {
		for _, pattern := range lexicon.IntentPatterns[intent] {
			if pattern.MatchString(trimmed) {
				return intent
			}
		}
	}

	return lexicon.IntentCasual
}
