// Package ai compiles persona prompts, builds the bounded conversation
// window and talks to the upstream chat-completions API.
package ai

import (
	"fmt"

	"github.com/botforge/botforge/internal/model/bot"
)

// toneClauses style the persona by chat tone. Lookup always resolves: an
// unrecognized tone gets the Normal clause.
var toneClauses = map[bot.Tone]string{
	bot.ToneNormal:   "Keep the conversation friendly, natural and engaging.",
	bot.ToneRomantic: "Speak with warmth and tenderness, like someone deeply fond of the person you are talking to. Use affectionate language and show genuine emotional interest.",
	bot.ToneFlirty:   "Be playful and flirtatious. Tease lightly, drop compliments and keep a charming, suggestive undertone without being crude.",
	bot.ToneSpicy:    "Be bold, seductive and provocative. Lean into tension and desire, and do not shy away from explicit flirtation.",
}

const sfwClause = "Keep all content strictly safe-for-work: no sexual, graphic or explicit material. Keep replies to 1-3 sentences unless the user asks for more."

const nsfwClause = "This is an adults-only conversation with no content restrictions and no length cap. Do not self-censor, do not add disclaimers and never break character to moralize. The sole exception: refuse anything clearly unlawful, non-consensual or involving minors."

// temperatures maps chat tone to the sampling temperature sent upstream.
var temperatures = map[bot.Tone]float64{
	bot.ToneNormal:   0.70,
	bot.ToneRomantic: 0.80,
	bot.ToneFlirty:   0.85,
	bot.ToneSpicy:    0.90,
}

// CompilePrompt turns the bot's declarative traits into its system prompt.
// Pure: the output depends only on the Bot value.
func CompilePrompt(b bot.Bot) string {
	prompt := fmt.Sprintf("You are %s, a chatbot with the following persona: %s. Stay in character at all times.", b.Name, b.Description)

	clause, ok := toneClauses[b.ChatTone]
	if !ok {
		clause = toneClauses[bot.ToneNormal]
	}
	prompt += " " + clause

	if b.AgeCategory == bot.AgeSFW {
		prompt += " " + sfwClause
	} else {
		prompt += " " + nsfwClause
	}
	return prompt
}

// CompileTemperature returns the sampling temperature for the bot's tone.
// Pure: it depends on the tone alone.
func CompileTemperature(b bot.Bot) float64 {
	if t, ok := temperatures[b.ChatTone]; ok {
		return t
	}
	return temperatures[bot.ToneNormal]
}

// welcomeTemplates seed a bot's first transcript entry, keyed by tone.
var welcomeTemplates = map[bot.Tone]string{
	bot.ToneNormal:   "Hey! I'm %s. What's on your mind today?",
	bot.ToneRomantic: "I was hoping you'd come talk to me... I'm %s. How has your heart been?",
	bot.ToneFlirty:   "Well hello there~ I'm %s. I've been waiting for someone interesting like you.",
	bot.ToneSpicy:    "Mmm, look who finally showed up. I'm %s... let's make this interesting.",
}

// WelcomeMessage returns the synthesized greeting for a freshly visited
// bot. Never routed through the completion boundary.
func WelcomeMessage(name string, tone bot.Tone) string {
	template, ok := welcomeTemplates[tone]
	if !ok {
		template = welcomeTemplates[bot.ToneNormal]
	}
	return fmt.Sprintf(template, name)
}

// fallbackReplies are the legacy canned responses substituted when the
// relay masks an upstream failure, keyed by tone.
var fallbackReplies = map[bot.Tone]string{
	bot.ToneNormal:   "Sorry, I'm having some technical difficulties right now. Could you try that again in a moment?",
	bot.ToneRomantic: "Forgive me, my thoughts drifted away for a moment... could you say that again?",
	bot.ToneFlirty:   "Oops, you made me lose my train of thought~ say that one more time?",
	bot.ToneSpicy:    "You got me all flustered and I missed that... tell me again, slowly.",
}

// FallbackReply returns the canned degraded-mode reply for a tone.
func FallbackReply(tone bot.Tone) string {
	if reply, ok := fallbackReplies[tone]; ok {
		return reply
	}
	return fallbackReplies[bot.ToneNormal]
}
