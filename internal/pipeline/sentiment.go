// internal/pipeline/sentiment.go
package pipeline

import (
	"github.com/lunaria-ai/lunaria/internal/lexicon"
)

// 截断上下限：语气修饰只关心符号和小幅强度，不需要原始分数
const (
	sentimentMin = -2
	sentimentMax = 2
)

// ScoreSentiment 基于词典对文本做情感评分
// 对命中词逐个求和后截断到 [-2, 2]；空输入或无命中词返回 0。纯函数。
func ScoreSentiment(text string) int {
	score := 0
	for _, token := range tokenize(text) {
		score += lexicon.SentimentWeights[token]
	}

	if score > sentimentMax {
		return sentimentMax
	}
	if score < sentimentMin {
		return sentimentMin
	}
	return score
}
