// Package chat drives the conversation round trip and the transcript edit
// operations. The service holds no per-chat state of its own: every call
// names its target bot explicitly and works from the durable transcript.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/botforge/botforge/internal/model/bot"
	"github.com/botforge/botforge/internal/model/chat"
	"github.com/botforge/botforge/internal/service/ai"
)

var (
	// ErrEmptyMessage rejects a send whose text is empty after trimming.
	// No side effect occurs; callers treat it as a local no-op.
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrNoCompleter rejects sends when no upstream model is configured.
	ErrNoCompleter = errors.New("no completion backend configured")
)

// Exchange is the result of one successful round trip.
type Exchange struct {
	UserMessage      chat.Message `json:"userMessage"`
	AssistantMessage chat.Message `json:"assistantMessage"`
}

// TranscriptStore is the slice of the transcript store the service uses.
type TranscriptStore interface {
	GetHistory(botID string) ([]chat.Message, error)
	Append(botID string, message chat.Message) error
	Replace(botID string, messages []chat.Message) error
	Delete(botID string) error
}

// Service orchestrates sends and edits against one transcript store and
// one completion boundary. Callers must not issue two concurrent Sends for
// the same bot; the service does not queue or reject them.
type Service struct {
	transcripts TranscriptStore
	completer   ai.Completer
}

// NewService wires the orchestrator.
func NewService(transcripts TranscriptStore, completer ai.Completer) *Service {
	return &Service{transcripts: transcripts, completer: completer}
}

// Open prepares a bot's chat surface. A bot visited for the first time gets
// exactly one synthesized welcome message, selected by tone and persisted
// before any user input is accepted. The returned history includes it.
func (s *Service) Open(_ context.Context, b bot.Bot) ([]chat.Message, error) {
	history, err := s.transcripts.GetHistory(b.ID)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		return history, nil
	}

	welcome := chat.New(chat.SenderBot, ai.WelcomeMessage(b.Name, b.ChatTone))
	if err := s.transcripts.Append(b.ID, welcome); err != nil {
		return nil, err
	}
	return []chat.Message{welcome}, nil
}

// Send runs one conversation round trip. The user message is persisted
// before the completion call and is never rolled back: on boundary failure
// the error surfaces, the transcript keeps the user message, and the human
// resubmitting is the retry mechanism.
func (s *Service) Send(ctx context.Context, b bot.Bot, userText string) (Exchange, error) {
	trimmed := strings.TrimSpace(userText)
	if trimmed == "" {
		return Exchange{}, ErrEmptyMessage
	}
	if s.completer == nil {
		return Exchange{}, ErrNoCompleter
	}

	userMessage := chat.New(chat.SenderUser, trimmed)
	if err := s.transcripts.Append(b.ID, userMessage); err != nil {
		return Exchange{}, err
	}

	// Re-read so the window builds from durable state; everything before
	// the appended entry is prior history.
	history, err := s.transcripts.GetHistory(b.ID)
	if err != nil {
		return Exchange{}, err
	}
	prior := history[:len(history)-1]

	window := ai.BuildWindow(b, prior, trimmed)
	reply, err := s.completer.Complete(ctx, window, ai.CompileTemperature(b))
	if err != nil {
		log.Printf("[chat] completion failed for bot=%s: %v", b.ID, err)
		return Exchange{}, err
	}

	assistantMessage := chat.New(chat.SenderBot, strings.TrimSpace(reply))
	if err := s.transcripts.Append(b.ID, assistantMessage); err != nil {
		return Exchange{}, err
	}

	return Exchange{UserMessage: userMessage, AssistantMessage: assistantMessage}, nil
}
