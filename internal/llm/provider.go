// Package llm talks to OpenAI-compatible chat completion endpoints.
package llm

import "context"

// ChatProvider is a text completion backend.
type ChatProvider interface {
	// Chat sends a multi-turn conversation and returns the reply text.
	Chat(ctx context.Context, messages []Message, opts ...Option) (string, error)

	// Generate is a single-turn Chat with an optional system prompt.
	Generate(ctx context.Context, prompt string, systemPrompt string, opts ...Option) (string, error)

	// Name returns the provider name.
	Name() string
}

// Message is one entry of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// CallOptions tune a single completion request.
type CallOptions struct {
	Temperature *float64
	MaxTokens   int
	// JSONMode asks the endpoint for a single JSON object reply.
	JSONMode bool
}

// Option mutates CallOptions.
type Option func(*CallOptions)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *CallOptions) { o.Temperature = &t }
}

// WithMaxTokens caps the reply length.
func WithMaxTokens(n int) Option {
	return func(o *CallOptions) { o.MaxTokens = n }
}

// WithJSONMode requests a JSON object response.
func WithJSONMode() Option {
	return func(o *CallOptions) { o.JSONMode = true }
}

func applyOptions(opts []Option) CallOptions {
	var o CallOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// messagesFor builds the message list used by Generate.
func messagesFor(prompt, systemPrompt string) []Message {
	messages := make([]Message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	}
	return append(messages, Message{Role: RoleUser, Content: prompt})
}
