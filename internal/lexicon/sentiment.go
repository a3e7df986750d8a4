// internal/lexicon/sentiment.go
package lexicon

// SentimentWeights 情感词典（AFINN 风格，逐词权重）
// 正值表示正向情感，负值表示负向情感。
// 评分器对命中词求和后截断到 [-2, 2]。
var SentimentWeights = map[string]int{
	// positive
	"love":      3,
	"adore":     3,
	"amazing":   3,
	"wonderful": 3,
	"perfect":   3,
	"beautiful": 2,
	"gorgeous":  2,
	"awesome":   2,
	"great":     2,
	"happy":     2,
	"joy":       2,
	"excited":   2,
	"sweet":     2,
	"lovely":    2,
	"cute":      2,
	"best":      2,
	"fantastic": 2,
	"brilliant": 2,
	"charming":  2,
	"good":      1,
	"nice":      1,
	"fine":      1,
	"fun":       1,
	"cool":      1,
	"like":      1,
	"smile":     1,
	"glad":      1,
	"thanks":    1,
	"thank":     1,
	"enjoy":     1,
	"pretty":    1,
	"warm":      1,
	"care":      1,
	"miss":      1,

	// negative
	"hate":       -3,
	"terrible":   -3,
	"horrible":   -3,
	"awful":      -3,
	"worst":      -3,
	"disgusting": -3,
	"angry":      -2,
	"furious":    -2,
	"mad":        -2,
	"sad":        -2,
	"cry":        -2,
	"crying":     -2,
	"depressed":  -2,
	"lonely":     -2,
	"hurt":       -2,
	"pain":       -2,
	"stupid":     -2,
	"ugly":       -2,
	"annoyed":    -2,
	"frustrated": -2,
	"upset":      -2,
	"broken":     -2,
	"bad":        -1,
	"tired":      -1,
	"bored":      -1,
	"sorry":      -1,
	"wrong":      -1,
	"worried":    -1,
	"afraid":     -1,
	"scared":     -1,
	"alone":      -1,
	"stress":     -1,
	"stressed":   -1,
}
