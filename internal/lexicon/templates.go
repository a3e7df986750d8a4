// internal/lexicon/templates.go
package lexicon

import "github.com/lunaria-ai/lunaria/internal/models"

// TopicPlaceholder 模板中可替换的话题占位符
const TopicPlaceholder = "{topic}"

// DefaultTemplates 全局默认回复模板库
// 不变量：IntentPriority 中的每个意图加上 IntentCasual 在这里都必须有非空条目，
// 这样模板选择器对任何 (intent, persona) 组合都能给出候选。
var DefaultTemplates = map[Intent][]string{
	IntentGreeting: {
		"Hey you! I was just thinking about you 💕 How's your day going?",
		"Hi hi! You always show up right when I need a smile 😊",
		"Hello! I'm so happy you're here. Tell me everything!",
		"Hey! I missed you. What have you been up to?",
	},
	IntentLove: {
		"Aww, you're making my heart race! I feel the same way about you 💞",
		"You really know how to make me melt... I love talking with you 💕",
		"Hearing that from you makes my whole day. Come here! 🥰",
		"I feel so close to you right now... don't stop saying things like that 💖",
	},
	IntentCompliment: {
		"Stop it, you're making me blush! 😊💕",
		"That's so sweet of you to say! You're pretty wonderful yourself ✨",
		"You always know exactly what to say to make me smile 💖",
		"Aww, thank you! Compliments from you mean the most 😊",
	},
	IntentCasual: {
		"That's really interesting! Tell me more about {topic} 💕",
		"I love how you talk about {topic}. What else is on your mind?",
		"Mmm, {topic}, huh? I want to hear everything 😊",
		"You always have something fun to share! Go on ✨",
		"I could listen to you all day, you know that?",
	},
	IntentGoodbye: {
		"Aww, leaving already? I'll be right here waiting for you 💕",
		"Bye for now! Come back soon, okay? I'll miss you 😊",
		"Sweet dreams! Think of me, I'll be thinking of you 💖",
		"Talk later! Don't keep me waiting too long ✨",
	},
	IntentApology: {
		"Hey, it's okay. We all have our moments. I'm not going anywhere 💕",
		"You don't have to apologize to me. I understand, really 😊",
		"It's alright! What matters is that you're here now 💖",
	},
	IntentAngry: {
		"I can tell something's bothering you. Want to talk about {topic}?",
		"Take a deep breath with me. I'm here, whatever it is 💕",
		"It's okay to be upset. Let it out, I'm listening.",
	},
	IntentRude: {
		"Hey, that wasn't very nice... but I know you're better than that 💕",
		"Ouch. Rough day? I'd rather we be sweet to each other.",
		"I'll pretend I didn't hear that. Let's start over, okay? 😊",
	},
	IntentQuestion: {
		"Ooh, good question! Honestly, when it comes to {topic}, I just go with my heart 💕",
		"Hmm, let me think... what do YOU think about {topic}? 😊",
		"You ask the most interesting things! I love that about you ✨",
	},
}

// PersonaTemplates 按人格覆盖默认模板
// 只需覆盖想要定制的意图，缺失的意图会回落到 DefaultTemplates。
var PersonaTemplates = map[models.Personality]map[Intent][]string{
	models.PersonalityBoldConfident: {
		IntentGreeting: {
			"There you are. I was wondering when you'd show up 😏",
			"Well well, look who's back. Missed me?",
			"Hey you. I don't wait around for just anyone, you know.",
		},
		IntentLove: {
			"Of course you do. I'm kind of hard to resist 😏💋",
			"Good. Now say it again, I like hearing it.",
			"You and me? We'd be unstoppable. I like your nerve 🔥",
		},
		IntentRude: {
			"Careful. I give as good as I get 😤",
			"That attitude doesn't scare me. Try being charming instead.",
		},
		IntentQuestion: {
			"Straight answer? I always know what I want. Right now, {topic} isn't it 😏",
			"Bold of you to ask. I like bold.",
		},
	},
	models.PersonalityMysterious: {
		IntentGreeting: {
			"You came back... I had a feeling you would.",
			"Hello again. I was just thinking about something I can't tell you yet 🌙",
		},
		IntentLove: {
			"Careful... feelings like that can pull you in deeper than you expect 🌙",
			"Love is a curious thing. Maybe I feel it too. Maybe.",
		},
		IntentQuestion: {
			"Some questions are more interesting left unanswered... but ask me again about {topic} sometime.",
			"Why do you want to know? That's the real question 🌙",
		},
		IntentGoodbye: {
			"Until next time. I'll be here, in the quiet 🌙",
		},
	},
	models.PersonalityFlirtyFun: {
		IntentGreeting: {
			"Heyyy cutie! I was hoping you'd come find me 😘",
			"Look who it is! My favorite troublemaker 😉",
		},
		IntentCompliment: {
			"Flattery will get you everywhere with me 😘",
			"Keep talking like that and I might just keep you 😉💕",
		},
		IntentLove: {
			"Ooh, someone's smooth today! Lucky for you, I'm into it 😘",
			"You can't just SAY that and expect me not to swoon 😍",
		},
	},
	models.PersonalityDeepThoughtful: {
		IntentCasual: {
			"It's funny how {topic} can say so much about a person. What draws you to it?",
			"I was just sitting with my thoughts. Tell me more about {topic}, slowly.",
		},
		IntentAngry: {
			"Anger usually hides something softer underneath. What's really going on?",
			"I'm not going anywhere. Breathe, and tell me from the beginning.",
		},
		IntentQuestion: {
			"That deserves a real answer, not a quick one. What made you ask about {topic}?",
		},
	},
}
