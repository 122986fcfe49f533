package resilience

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/liliang-cn/partchat/internal/llm"
	"go.uber.org/zap"
)

// Provider wraps an llm.ChatProvider with a per-attempt timeout,
// retries and a circuit breaker.
type Provider struct {
	provider llm.ChatProvider
	retry    *RetryConfig
	cb       *CircuitBreaker
	timeout  time.Duration
	logger   *zap.Logger
}

// NewProvider creates a resilient provider. A zero timeout disables the
// per-attempt deadline; nil configs use the defaults.
func NewProvider(
	provider llm.ChatProvider,
	timeout time.Duration,
	retryConfig *RetryConfig,
	cbConfig *CircuitBreakerConfig,
	logger *zap.Logger,
) *Provider {
	if retryConfig == nil {
		retryConfig = DefaultRetryConfig()
	}
	if retryConfig.RetryableErrors == nil {
		retryConfig.RetryableErrors = IsRetryableError
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		provider: provider,
		retry:    retryConfig,
		cb:       NewCircuitBreaker(cbConfig, logger),
		timeout:  timeout,
		logger:   logger,
	}
}

// Chat runs provider.Chat through the breaker with retries.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	var result string
	err := RetryWithBackoff(ctx, p.retry, p.logger, func() error {
		return p.cb.Execute(func() error {
			attemptCtx, cancel := p.attemptContext(ctx)
			defer cancel()

			var err error
			result, err = p.provider.Chat(attemptCtx, messages, opts...)
			return err
		})
	})
	return result, err
}

// Generate runs a single-turn completion through Chat.
func (p *Provider) Generate(ctx context.Context, prompt string, systemPrompt string, opts ...llm.Option) (string, error) {
	messages := []llm.Message{}
	if systemPrompt != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})
	return p.Chat(ctx, messages, opts...)
}

// Name returns the wrapped provider name.
func (p *Provider) Name() string {
	return p.provider.Name() + "-resilient"
}

// CircuitBreaker exposes the breaker for monitoring.
func (p *Provider) CircuitBreaker() *CircuitBreaker {
	return p.cb
}

func (p *Provider) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

// IsRetryableError reports whether err is worth another attempt:
// attempt deadlines, network errors, 5xx, 408 and 429 responses, and
// dropped connections. Cancellation of the caller's context is handled by
// RetryWithBackoff.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrCircuitBreakerOpen) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	switch code := llm.StatusCode(err); {
	case code >= 500, code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return true
	case code != 0:
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	msg := err.Error()
	for _, marker := range []string{"EOF", "connection reset"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
