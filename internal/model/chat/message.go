package chat

import "time"

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry. It has no identity of its own; its
// position in the transcript is the key edit operations address it by.
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// New builds a message stamped with the current wall clock in epoch
// milliseconds. Append-only insertion keeps timestamps non-decreasing.
func New(sender Sender, text string) Message {
	return Message{
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}
