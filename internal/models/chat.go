package models

import "time"

// Message is a single chat message in a conversation. Messages travel over
// the realtime channel as JSON.
type Message struct {
	ID        string    `json:"id,omitempty"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SendMessageRequest defines the request body for sending a chat message.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
