// internal/pipeline/language_test.go
package pipeline

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"关键词提到语言名", "can you talk in hindi please", "Hindi"},
		{"关键词tamil", "reply in Tamil", "Tamil"},
		{"天城文走区块兜底", "मुझे आपसे प्यार है", "Hindi"},
		{"孟加拉文区块", "আমি তোমাকে ভালোবাসি", "Bengali"},
		{"古木基文区块", "ਮੈਂ ਤੈਨੂੰ ਪਿਆਰ ਕਰਦਾ ਹਾਂ", "Punjabi"},
		{"泰卢固文区块", "నేను నిన్ను ప్రేమిస్తున్నాను", "Telugu"},
		{"泰米尔文区块", "நான் உன்னை காதலிக்கிறேன்", "Tamil"},
		{"阿拉伯文区块默认乌尔都语", "میں تم سے محبت کرتا ہوں", "Urdu"},
		{"纯英文无语言线索", "hello how are you", ""},
		{"空输入", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectLanguage(tt.text)
			if got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, 期望 %q", tt.text, got, tt.want)
			}
		})
	}
}

// 关键词优先于文字区块：天城文写的"tamil"应按关键词表返回
func TestDetectLanguageKeywordWinsOverScript(t *testing.T) {
	// 消息主体是天城文，但明确提到了 bengali
	got := DetectLanguage("मुझे bengali में जवाब दो")
	if got != "Bengali" {
		t.Errorf("DetectLanguage = %q, 期望关键词命中 Bengali", got)
	}
}

func TestDetectLanguageIdempotent(t *testing.T) {
	text := "मुझे आपसे प्यार है"
	first := DetectLanguage(text)
	for i := 0; i < 10; i++ {
		if got := DetectLanguage(text); got != first {
			t.Fatalf("重复调用结果不一致: %q != %q", got, first)
		}
	}
}
