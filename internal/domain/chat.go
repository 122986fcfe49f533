package domain

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session represents a chat session
type Session struct {
	ID        string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages"`
}

// Message represents a chat message
type Message struct {
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryRecord is the durable audit row written after each turn
type HistoryRecord struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Intent      string    `json:"intent"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ChatResponse is the response to a chat message
type ChatResponse struct {
	Response       string `json:"response"`
	Intent         Intent `json:"intent"`
	SuggestedParts []Part `json:"suggestedParts"`
	SessionID      string `json:"sessionId"`
}

// Stats represents system statistics
type Stats struct {
	TotalParts     int    `json:"total_parts"`
	TotalProducts  int    `json:"total_products"`
	TotalChats     int    `json:"total_chats"`
	ActiveSessions int    `json:"active_sessions"`
	Strategy       string `json:"strategy"`
	CircuitBreaker string `json:"circuit_breaker,omitempty"`
}
