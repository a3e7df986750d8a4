// internal/pipeline/language.go
package pipeline

import (
	"unicode"

	"github.com/lunaria-ai/lunaria/internal/lexicon"
)

// DetectLanguage 猜测输入的目标回复语言
// 先按关键词表顺序匹配语言名，再按 Unicode 文字区块兜底；
// 都未命中返回空串，调用方把空串当作"跟随用户语言/全局默认"，不是错误。
func DetectLanguage(text string) string {
	if text == "" {
		return ""
	}

	for _, kw := range lexicon.LanguageKeywords {
		if kw.Pattern.MatchString(text) {
			return kw.Language
		}
	}

	for _, sd := range lexicon.ScriptDefaults {
		for _, r := range text {
			if unicode.Is(sd.Ranges, r) {
				return sd.Language
			}
		}
	}

	return ""
}
