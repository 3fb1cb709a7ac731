package store

import (
	"encoding/json"
	"fmt"

	"github.com/botforge/botforge/internal/model/chat"
)

const chatsKey = "chats"

// Transcripts manages the per-bot message logs, persisted as one JSON map
// of bot id to message sequence.
type Transcripts struct {
	kv KV
}

// NewTranscripts returns a transcript store backed by kv.
func NewTranscripts(kv KV) *Transcripts {
	return &Transcripts{kv: kv}
}

func (s *Transcripts) load() (map[string][]chat.Message, error) {
	raw, ok, err := s.kv.Get(chatsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string][]chat.Message{}, nil
	}
	var chats map[string][]chat.Message
	if err := json.Unmarshal([]byte(raw), &chats); err != nil {
		return nil, fmt.Errorf("failed to decode transcript map: %w", err)
	}
	return chats, nil
}

func (s *Transcripts) save(chats map[string][]chat.Message) error {
	raw, err := json.Marshal(chats)
	if err != nil {
		return fmt.Errorf("failed to encode transcript map: %w", err)
	}
	return s.kv.Set(chatsKey, string(raw))
}

// GetHistory returns the bot's transcript, empty if none exists yet. The
// returned slice is the caller's copy.
func (s *Transcripts) GetHistory(botID string) ([]chat.Message, error) {
	chats, err := s.load()
	if err != nil {
		return nil, err
	}
	history := chats[botID]
	copied := make([]chat.Message, len(history))
	copy(copied, history)
	return copied, nil
}

// Append durably adds one message to the end of the bot's transcript.
func (s *Transcripts) Append(botID string, message chat.Message) error {
	chats, err := s.load()
	if err != nil {
		return err
	}
	chats[botID] = append(chats[botID], message)
	return s.save(chats)
}

// Replace durably swaps the bot's transcript for the given sequence. Used
// by the message editor.
func (s *Transcripts) Replace(botID string, messages []chat.Message) error {
	chats, err := s.load()
	if err != nil {
		return err
	}
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	chats[botID] = copied
	return s.save(chats)
}

// Delete removes the bot's transcript entirely.
func (s *Transcripts) Delete(botID string) error {
	chats, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := chats[botID]; !ok {
		return nil
	}
	delete(chats, botID)
	return s.save(chats)
}
