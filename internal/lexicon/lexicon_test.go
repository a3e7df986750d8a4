// internal/lexicon/lexicon_test.go
package lexicon

import "testing"

// 默认模板库必须覆盖所有意图，否则模板选择器可能拿不到候选
func TestDefaultTemplatesCoverAllIntents(t *testing.T) {
	intents := append([]Intent{IntentCasual}, IntentPriority...)
	for _, intent := range intents {
		list, ok := DefaultTemplates[intent]
		if !ok {
			t.Errorf("意图 %q 缺少默认模板", intent)
			continue
		}
		if len(list) == 0 {
			t.Errorf("意图 %q 的默认模板列表为空", intent)
		}
		for i, tmpl := range list {
			if tmpl == "" {
				t.Errorf("意图 %q 的第 %d 条模板为空字符串", intent, i)
			}
		}
	}
}

func TestIntentPriorityHasPatterns(t *testing.T) {
	for _, intent := range IntentPriority {
		if len(IntentPatterns[intent]) == 0 {
			t.Errorf("优先级列表中的意图 %q 没有匹配规则", intent)
		}
	}
	if _, ok := IntentPatterns[IntentCasual]; ok {
		t.Error("casual 是兜底意图，不应该有匹配规则")
	}
}

// 人格覆盖只允许引用枚举内的意图
func TestPersonaTemplatesReferenceKnownIntents(t *testing.T) {
	known := make(map[Intent]bool)
	for intent := range DefaultTemplates {
		known[intent] = true
	}

	for persona, overrides := range PersonaTemplates {
		for intent, list := range overrides {
			if !known[intent] {
				t.Errorf("人格 %q 覆盖了未知意图 %q", persona, intent)
			}
			if len(list) == 0 {
				t.Errorf("人格 %q 对意图 %q 的覆盖列表为空", persona, intent)
			}
		}
	}
}

func TestSupportedLanguagesNonEmpty(t *testing.T) {
	langs := SupportedLanguages()
	if len(langs) < 20 {
		t.Errorf("支持语言数 = %d, 期望至少 20", len(langs))
	}

	seen := make(map[string]bool)
	for _, lang := range langs {
		if lang == "" {
			t.Error("语言列表不应包含空串")
		}
		if seen[lang] {
			t.Errorf("语言 %q 重复", lang)
		}
		seen[lang] = true
	}
}
