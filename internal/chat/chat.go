package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pawsconnect/backend/internal/models"
)

// Channel is the realtime key-value channel carrying chat messages. Push
// appends under a generated key; List returns everything under the path.
// Live subscription fan-out stays on the clients.
type Channel interface {
	Push(ctx context.Context, path string, value any) (string, error)
	List(ctx context.Context, path string) (map[string]models.Message, error)
}

// ConversationID derives the deterministic conversation key for a pair of
// actors: both ids sorted and joined with an underscore, so either side
// computes the same path.
func ConversationID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// Service sends and reads chat messages over a Channel.
type Service struct {
	channel Channel
}

// NewService creates a new chat Service
func NewService(channel Channel) *Service {
	return &Service{channel: channel}
}

// Send appends a message to the conversation and returns it with the
// channel-assigned key.
func (s *Service) Send(ctx context.Context, convID, senderID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is empty")
	}
	msg := models.Message{
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	key, err := s.channel.Push(ctx, "messages/"+convID, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = key
	return &msg, nil
}

// History returns the conversation's messages oldest first, key-ordered on
// equal timestamps.
func (s *Service) History(ctx context.Context, convID string) ([]models.Message, error) {
	entries, err := s.channel.List(ctx, "messages/"+convID)
	if err != nil {
		return nil, err
	}
	messages := make([]models.Message, 0, len(entries))
	for key, msg := range entries {
		msg.ID = key
		messages = append(messages, msg)
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}
