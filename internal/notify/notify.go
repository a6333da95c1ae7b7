// Package notify delivers booking conversations to shop owners and
// customers. The core treats it as a fire-and-forget sink; delivery
// failures are logged, never surfaced into the booking flow.
package notify

import "context"

// Conversation is the message thread opened when an owner decides on
// a booking request.
type Conversation struct {
	Participants     []string
	ParticipantNames map[string]string
	InitialMessage   string
	ShopID           string
	ShopName         string
}

// Sink accepts conversation-creation requests.
type Sink interface {
	CreateConversation(ctx context.Context, conv Conversation) error
}

// NoopSink discards conversations. Used when no messaging channel is
// configured.
type NoopSink struct{}

func (NoopSink) CreateConversation(context.Context, Conversation) error { return nil }
