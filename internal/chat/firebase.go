package chat

import (
	"context"

	"firebase.google.com/go/v4/db"
	"github.com/pawsconnect/backend/internal/models"
)

// FirebaseChannel implements Channel on the Firebase Realtime Database.
type FirebaseChannel struct {
	client *db.Client
}

// NewFirebaseChannel creates a new FirebaseChannel
func NewFirebaseChannel(client *db.Client) *FirebaseChannel {
	return &FirebaseChannel{client: client}
}

// Push appends value under path and returns the generated child key.
func (c *FirebaseChannel) Push(ctx context.Context, path string, value any) (string, error) {
	ref, err := c.client.NewRef(path).Push(ctx, value)
	if err != nil {
		return "", err
	}
	return ref.Key, nil
}

// List reads every message stored under path.
func (c *FirebaseChannel) List(ctx context.Context, path string) (map[string]models.Message, error) {
	var entries map[string]models.Message
	if err := c.client.NewRef(path).Get(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
