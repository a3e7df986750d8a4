// internal/lexicon/stopwords.go
package lexicon

// Stopwords 话题提取时过滤掉的常见功能词与代词
var Stopwords = map[string]bool{
	"a": true, "an": true, "the": true,
	"i": true, "im": true, "me": true, "my": true, "mine": true, "myself": true,
	"you": true, "your": true, "yours": true, "yourself": true, "u": true, "ur": true,
	"he": true, "him": true, "his": true, "she": true, "her": true, "hers": true,
	"it": true, "its": true, "we": true, "us": true, "our": true, "ours": true,
	"they": true, "them": true, "their": true, "theirs": true,
	"am": true, "is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "do": true, "does": true, "did": true, "doing": true,
	"have": true, "has": true, "had": true, "having": true,
	"will": true, "would": true, "can": true, "could": true, "shall": true,
	"should": true, "may": true, "might": true, "must": true,
	"and": true, "or": true, "but": true, "so": true, "if": true, "then": true,
	"because": true, "as": true, "of": true, "at": true, "by": true, "for": true,
	"with": true, "about": true, "to": true, "from": true, "in": true, "on": true,
	"up": true, "down": true, "out": true, "off": true, "over": true, "under": true,
	"this": true, "that": true, "these": true, "those": true, "there": true, "here": true,
	"what": true, "which": true, "who": true, "whom": true, "when": true,
	"where": true, "why": true, "how": true,
	"not": true, "no": true, "nor": true, "dont": true, "didnt": true, "cant": true,
	"just": true, "very": true, "really": true, "too": true, "also": true,
	"now": true, "some": true, "any": true, "all": true, "more": true, "most": true,
	"hey": true, "hi": true, "hello": true, "please": true, "ok": true, "okay": true,
	"yeah": true, "yes": true, "oh": true, "well": true,
}
