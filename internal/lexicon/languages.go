// internal/lexicon/languages.go
package lexicon

import (
	"regexp"
	"unicode"
)

// LanguageKeyword 一种支持语言的关键词规则
// 模式覆盖英文语言名、本族文字写法以及常见的罗马化提法。
type LanguageKeyword struct {
	Language string
	Pattern  *regexp.Regexp
}

// LanguageKeywords 关键词检测表，按表序匹配，先命中者胜
// 覆盖目标市场的二十多种主要语言。
// 注意：Go 正则的 \b 只认 ASCII 词边界，本族文字的写法放在边界组外面。
var LanguageKeywords = []LanguageKeyword{
	{"Hindi", regexp.MustCompile(`(?i)\bhindi\b|हिंदी|हिन्दी`)},
	{"Bengali", regexp.MustCompile(`(?i)\b(bengali|bangla)\b|বাংলা`)},
	{"Telugu", regexp.MustCompile(`(?i)\btelugu\b|తెలుగు`)},
	{"Marathi", regexp.MustCompile(`(?i)\bmarathi\b|मराठी`)},
	{"Tamil", regexp.MustCompile(`(?i)\btamil\b|தமிழ்`)},
	{"Urdu", regexp.MustCompile(`(?i)\burdu\b|اردو`)},
	{"Gujarati", regexp.MustCompile(`(?i)\bgujarati\b|ગુજરાતી`)},
	{"Kannada", regexp.MustCompile(`(?i)\bkannada\b|ಕನ್ನಡ`)},
	{"Malayalam", regexp.MustCompile(`(?i)\bmalayalam\b|മലയാളം`)},
	{"Odia", regexp.MustCompile(`(?i)\b(odia|oriya)\b|ଓଡ଼ିଆ`)},
	{"Punjabi", regexp.MustCompile(`(?i)\b(punjabi|panjabi)\b|ਪੰਜਾਬੀ`)},
	{"Assamese", regexp.MustCompile(`(?i)\bassamese\b|অসমীয়া`)},
	{"Bhojpuri", regexp.MustCompile(`(?i)\bbhojpuri\b|भोजपुरी`)},
	{"English", regexp.MustCompile(`(?i)\b(english|angrezi)\b`)},
	{"Spanish", regexp.MustCompile(`(?i)\b(spanish|espanol)\b|español`)},
	{"French", regexp.MustCompile(`(?i)\bfrench\b|français`)},
	{"German", regexp.MustCompile(`(?i)\bgerman\b|deutsch\b`)},
	{"Portuguese", regexp.MustCompile(`(?i)\b(portuguese|portugues)\b|português`)},
	{"Japanese", regexp.MustCompile(`(?i)\b(japanese|nihongo)\b|日本語`)},
	{"Korean", regexp.MustCompile(`(?i)\b(korean|hangul)\b|한국어`)},
	{"Chinese", regexp.MustCompile(`(?i)\b(chinese|mandarin)\b|中文|汉语|普通话`)},
	{"Arabic", regexp.MustCompile(`(?i)\barabic\b|العربية`)},
	{"Russian", regexp.MustCompile(`(?i)\brussian\b|русский`)},
}

// ScriptDefault 文字区块到默认语言的映射
type ScriptDefault struct {
	Ranges   *unicode.RangeTable
	Language string
}

// ScriptDefaults 关键词未命中时的 Unicode 区块启发式，按表序返回第一个命中
var ScriptDefaults = []ScriptDefault{
	{unicode.Devanagari, "Hindi"},
	{unicode.Bengali, "Bengali"},
	{unicode.Gurmukhi, "Punjabi"},
	{unicode.Gujarati, "Gujarati"},
	{unicode.Telugu, "Telugu"},
	{unicode.Tamil, "Tamil"},
	{unicode.Kannada, "Kannada"},
	{unicode.Malayalam, "Malayalam"},
	{unicode.Oriya, "Odia"},
	{unicode.Arabic, "Urdu"},
}

// SupportedLanguages 前端可选的回复语言列表（空串表示 auto）
func SupportedLanguages() []string {
	langs := make([]string, 0, len(LanguageKeywords))
	for _, kw := range LanguageKeywords {
		langs = append(langs, kw.Language)
	}
	return langs
}
