package models

import "time"

// MessageType identifies the author of a chat message
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageAI   MessageType = "ai"
)

// ChatMessage is one entry of an in-memory advisor conversation
type ChatMessage struct {
	ID        int64       `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// SuggestRequest is the body of POST /api/ai/suggest
type SuggestRequest struct {
	UserID         string `json:"userId"`
	PersonalityKey string `json:"personalityKey"`
	Prompt         string `json:"prompt"`
}

// Suggestion is the backend advisor reply
type Suggestion struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
	Scripted       bool   `json:"scripted,omitempty"` // true when produced by the local classifier
}

// ChatTranscript is a session id with a slice of its messages
type ChatTranscript struct {
	SessionID string        `json:"sessionId"`
	Messages  []ChatMessage `json:"messages"`
}
