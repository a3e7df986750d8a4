// internal/lexicon/intents.go
package lexicon

import "regexp"

// Intent 用户消息意图（固定枚举）
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentLove       Intent = "love"
	IntentCompliment Intent = "compliment"
	IntentCasual     Intent = "casual"
	IntentGoodbye    Intent = "goodbye"
	IntentApology    Intent = "apology"
	IntentAngry      Intent = "angry"
	IntentRude       Intent = "rude"
	IntentQuestion   Intent = "question"
)

// IntentPriority 分类时的固定优先级顺序
// 一条消息可能同时命中多个类别（比如带着怒气的道歉），
// 顺序决定哪种情绪信号主导回复。IntentCasual 是兜底，不参与匹配。
var IntentPriority = []Intent{
	IntentApology,
	IntentAngry,
	IntentRude,
	IntentQuestion,
	IntentLove,
	IntentGreeting,
	IntentCompliment,
	IntentGoodbye,
}

// IntentPatterns 每个意图的有序匹配规则（大小写不敏感在模式内处理）
var IntentPatterns = map[Intent][]*regexp.Regexp{
	IntentApology: {
		regexp.MustCompile(`(?i)\b(sorry|apolog(y|ies|ize|ise|izing))\b`),
		regexp.MustCompile(`(?i)\b(my bad|my fault|forgive me)\b`),
		regexp.MustCompile(`(?i)\bdidn'?t mean (to|it)\b`),
	},
	IntentAngry: {
		regexp.MustCompile(`(?i)\b(angry|furious|mad|annoyed|frustrated|irritated|upset)\b`),
		regexp.MustCompile(`(?i)\b(fed up|pissed( off)?|sick of)\b`),
		regexp.MustCompile(`(?i)\bhate (this|that|it|everything|my)\b`),
	},
	IntentRude: {
		regexp.MustCompile(`(?i)\b(stupid|idiot|dumb|ugly|loser|pathetic|worthless|useless)\b`),
		regexp.MustCompile(`(?i)\bshut up\b`),
		regexp.MustCompile(`(?i)\b(hate|despise) (you|u)\b`),
	},
	IntentQuestion: {
		regexp.MustCompile(`\?\s*$`),
		regexp.MustCompile(`(?i)^(who|what|when|where|why|how|which)\b`),
		regexp.MustCompile(`(?i)^(do|does|did|can|could|will|would|should|are|is|am|have|has)\b`),
	},
	IntentLove: {
		regexp.MustCompile(`(?i)\b(love|adore|miss) (you|u|ya)\b`),
		regexp.MustCompile(`(?i)\bi('?m| am) (falling|in love)\b`),
		regexp.MustCompile(`(?i)\b(crush on you|be mine|my heart|soulmate|pyaar|pyar)\b`),
	},
	IntentGreeting: {
		regexp.MustCompile(`(?i)^\s*(hi+|hello+|hey+|heya|yo|howdy|hiya|sup)\b`),
		regexp.MustCompile(`(?i)\bgood\s*(morning|afternoon|evening)\b`),
		regexp.MustCompile(`(?i)\b(namaste|hola|what'?s up|wassup)\b`),
	},
	IntentCompliment: {
		regexp.MustCompile(`(?i)\byou('?re| are)( so| really| very)? (beautiful|gorgeous|cute|pretty|lovely|amazing|sweet|smart|wonderful|perfect|stunning)\b`),
		regexp.MustCompile(`(?i)\b(nice|great|beautiful|lovely|cute) (hair|eyes|smile|voice|laugh)\b`),
		regexp.MustCompile(`(?i)\bi like you\b`),
	},
	IntentGoodbye: {
		regexp.MustCompile(`(?i)\b(bye+|goodbye|goodnight|good night|gn|gtg|gotta go)\b`),
		regexp.MustCompile(`(?i)\bsee (you|ya|u)( later| soon| tomorrow)?\b`),
		regexp.MustCompile(`(?i)\b(talk (to you )?later|ttyl|catch you later)\b`),
	},
}
