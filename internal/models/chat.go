// Package models defines data structures for the CryptoAI portal core.
package models

import "time"

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry in the conversation log. Messages are append-only:
// once created they are never mutated or removed for the lifetime of the
// session, and insertion order is display order.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Thought   string      `json:"thought,omitempty"` // assistant reasoning annotation, may be empty
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserMessage creates a user-authored message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, CreatedAt: time.Now()}
}

// NewAssistantMessage creates an assistant message with an optional thought.
func NewAssistantMessage(content, thought string) Message {
	return Message{Role: RoleAssistant, Content: content, Thought: thought, CreatedAt: time.Now()}
}

// ChatReply is the assistant's answer to a single conversational turn.
type ChatReply struct {
	Response string `json:"response"`
	Thought  string `json:"thought,omitempty"`
}

// GreetingMessage is the canned assistant message seeding every new conversation.
const GreetingMessage = "Hello! I'm your Crypto Investment Assistant. How can I help you today? I can analyze your portfolio, suggest rebalancing strategies, or provide market insights."

// ConnectionFallbackMessage is appended as an assistant turn when a chat
// request fails at the transport level. Raw errors are never shown to the user.
const ConnectionFallbackMessage = "Sorry, I'm having trouble connecting to my brain right now. Please ensure the backend is running."
