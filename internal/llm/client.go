package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ProviderName identifies the OpenAI-compatible client.
const ProviderName = "openai-compatible"

// Config configures Client.
type Config struct {
	// BaseURL is the API root, e.g. https://api.deepseek.com/v1.
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns DeepSeek defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.deepseek.com/v1",
		Model:   "deepseek-chat",
		Timeout: 30 * time.Second,
	}
}

// ErrEmptyReply is returned when the endpoint answers without any choice.
var ErrEmptyReply = errors.New("llm: no choices in response")

// Client calls /chat/completions on an OpenAI-compatible endpoint.
type Client struct {
	model  string
	client *openai.Client
}

// NewClient creates a client. Zero fields of cfg fall back to DefaultConfig.
func NewClient(cfg *Config) (*Client, error) {
	def := DefaultConfig()
	if cfg == nil {
		cfg = def
	}
	c := *cfg
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.APIKey == "" {
		return nil, errors.New("llm: api_key is required")
	}

	clientConfig := openai.DefaultConfig(c.APIKey)
	clientConfig.BaseURL = strings.TrimRight(c.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{Timeout: c.Timeout}

	return &Client{
		model:  c.Model,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Chat sends messages and returns the first choice's content.
func (c *Client) Chat(ctx context.Context, messages []Message, opts ...Option) (string, error) {
	o := applyOptions(opts)

	req := openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  make([]openai.ChatCompletionMessage, len(messages)),
		MaxTokens: o.MaxTokens,
	}
	for i, msg := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: string(msg.Role), Content: msg.Content}
	}
	if o.Temperature != nil {
		req.Temperature = float32(*o.Temperature)
	}
	if o.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm: chat completion with %s: %w", c.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	return resp.Choices[0].Message.Content, nil
}

// Generate runs a single-turn completion.
func (c *Client) Generate(ctx context.Context, prompt string, systemPrompt string, opts ...Option) (string, error) {
	return c.Chat(ctx, messagesFor(prompt, systemPrompt), opts...)
}

// StatusCode returns the HTTP status carried by a completion error, or 0.
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
