package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/botforge/botforge/internal/model/chat"
)

var (
	// ErrIndexOutOfRange rejects an edit addressing a position the
	// transcript does not have.
	ErrIndexOutOfRange = errors.New("message index out of range")
	// ErrSenderMismatch rejects an edit whose claimed sender does not
	// match the stored message, guarding against a stale view.
	ErrSenderMismatch = errors.New("sender does not match message at index")
)

// DeleteMessage edits the transcript in place and returns the new,
// persisted sequence so the caller can resynchronize its view.
//
// A bot message is removed alone; later messages shift down one position.
// A user message anchors the replies that follow it, so deleting one
// truncates the transcript to exactly index entries. Caller confirmation
// is a precondition; nothing here prompts.
func (s *Service) DeleteMessage(_ context.Context, botID string, index int, sender chat.Sender) ([]chat.Message, error) {
	history, err := s.transcripts.GetHistory(botID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(history) {
		return nil, fmt.Errorf("%w: index %d, transcript length %d", ErrIndexOutOfRange, index, len(history))
	}
	if history[index].Sender != sender {
		return nil, fmt.Errorf("%w: stored sender is %q", ErrSenderMismatch, history[index].Sender)
	}

	var edited []chat.Message
	switch sender {
	case chat.SenderBot:
		edited = append(history[:index], history[index+1:]...)
	case chat.SenderUser:
		edited = history[:index]
	default:
		return nil, fmt.Errorf("%w: stored sender is %q", ErrSenderMismatch, history[index].Sender)
	}

	if err := s.transcripts.Replace(botID, edited); err != nil {
		return nil, err
	}
	return edited, nil
}
