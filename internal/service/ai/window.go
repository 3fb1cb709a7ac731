package ai

import (
	"github.com/cloudwego/eino/schema"

	"github.com/botforge/botforge/internal/model/bot"
	"github.com/botforge/botforge/internal/model/chat"
)

// historyLimit caps how much transcript crosses the network boundary per
// request. Older messages are silently dropped, never summarized.
const historyLimit = 10

// BuildWindow derives the prompt context for one completion request:
// one system entry with the compiled persona prompt, the trailing
// historyLimit messages of history in original order, and one user entry
// for the new message. At most historyLimit+2 entries.
func BuildWindow(b bot.Bot, history []chat.Message, userText string) []*schema.Message {
	window := make([]*schema.Message, 0, historyLimit+2)
	window = append(window, schema.SystemMessage(CompilePrompt(b)))

	startIdx := 0
	if len(history) > historyLimit {
		startIdx = len(history) - historyLimit
	}
	for _, msg := range history[startIdx:] {
		switch msg.Sender {
		case chat.SenderUser:
			window = append(window, schema.UserMessage(msg.Text))
		case chat.SenderBot:
			window = append(window, schema.AssistantMessage(msg.Text, nil))
		}
	}

	return append(window, schema.UserMessage(userText))
}
