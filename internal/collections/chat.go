package collections

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tooldex/tooldex/internal/kv"
)

// TranscriptCap bounds the stored chat history. Older messages are dropped
// from the front when the cap is exceeded.
const TranscriptCap = 50

// Message is one chat turn.
type Message struct {
	Role string    `json:"role"` // "user" or "assistant"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Chat persists the assistant conversation transcript as a single kv blob.
type Chat struct {
	kv  kv.Store
	now func() time.Time
}

func NewChat(kvStore kv.Store) *Chat {
	return &Chat{kv: kvStore, now: time.Now}
}

// Append adds a message to the transcript, stamping it if unstamped, and
// trims to the cap.
func (c *Chat) Append(ctx context.Context, msg Message) error {
	if msg.At.IsZero() {
		msg.At = c.now().UTC()
	}

	msgs := c.Load(ctx)
	msgs = append(msgs, msg)
	if len(msgs) > TranscriptCap {
		msgs = msgs[len(msgs)-TranscriptCap:]
	}

	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, kv.KeyChatTranscript, raw)
}

// Load returns the transcript, oldest first. Missing or corrupt data loads
// as an empty conversation.
func (c *Chat) Load(ctx context.Context) []Message {
	raw, err := c.kv.Get(ctx, kv.KeyChatTranscript)
	if err != nil {
		return []Message{}
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil || msgs == nil {
		return []Message{}
	}
	return msgs
}

// Clear drops the whole transcript.
func (c *Chat) Clear(ctx context.Context) error {
	return c.kv.Delete(ctx, kv.KeyChatTranscript)
}
