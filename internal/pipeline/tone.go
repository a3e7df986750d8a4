// internal/pipeline/tone.go
package pipeline

import (
	"strings"

	"github.com/lunaria-ai/lunaria/internal/lexicon"
	"github.com/lunaria-ai/lunaria/internal/models"
)

// toneProfile 人格的语气修饰规则
type toneProfile struct {
	suffix     string // 常规后缀
	loveSuffix string // love 意图专用后缀
	negPrefix  string // 负向情感时前置的共情句
}

// 语气修饰表：(人格, 情感符号, 意图) -> 装饰
// 不在表里的人格原样透传。
var toneProfiles = map[models.Personality]toneProfile{
	models.PersonalityCutePlayful: {
		suffix:     " 💕",
		loveSuffix: " 💕💕",
		negPrefix:  "Aww, come here... ",
	},
	models.PersonalityBoldConfident: {
		suffix:     " 😏",
		loveSuffix: " 🔥",
	},
	models.PersonalityRomanticDreamy: {
		suffix:     " 💖",
		loveSuffix: " 💞",
		negPrefix:  "Oh love, I'm right here. ",
	},
	models.PersonalityMysterious: {
		suffix: " 🌙",
	},
	models.PersonalityFlirtyFun: {
		suffix:     " 😉",
		loveSuffix: " 😘",
	},
	models.PersonalityDeepThoughtful: {
		suffix:    "",
		negPrefix: "I hear you, truly. ",
	},
}

// DecorateTone 按 (人格, 情感符号, 意图) 对回复做确定性的语气修饰
// 负向情感触发共情前缀并去掉轻快后缀；rude 意图不加共情前缀。
// 这里没有任何随机性，随机只存在于模板选择器里。
func DecorateTone(persona models.Personality, reply string, sentiment int, intent lexicon.Intent) string {
	profile, ok := toneProfiles[persona]
	if !ok {
		return reply
	}

	if sentiment < 0 {
		if profile.negPrefix != "" && intent != lexicon.IntentRude {
			return profile.negPrefix + reply
		}
		return reply
	}

	suffix := profile.suffix
	if intent == lexicon.IntentLove && profile.loveSuffix != "" {
		suffix = profile.loveSuffix
	}
	if suffix == "" || strings.HasSuffix(reply, strings.TrimSpace(suffix)) {
		return reply
	}
	return reply + suffix
}
