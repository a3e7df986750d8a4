// internal/pipeline/keyword.go
package pipeline

import (
	"strings"
	"unicode"

	"github.com/lunaria-ai/lunaria/internal/lexicon"
)

// FallbackTopic 提取不到话题词时使用的占位话题
const FallbackTopic = "it"

// tokenize 小写化并切出字母连续段
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// ExtractKeyword 提取输入中的话题关键词
// 去掉停用词后取剩余最长的词；并列时取先出现者。
// 没有剩余词时返回 FallbackTopic，永不返回空串。
func ExtractKeyword(text string) string {
	topic := ""
	for _, token := range tokenize(text) {
		if lexicon.Stopwords[token] {
			continue
		}
		if len(token) > len(topic) {
			topic = token
		}
	}

	if topic == "" {
		return FallbackTopic
	}
	return topic
}
