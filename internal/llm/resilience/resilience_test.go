package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/liliang-cn/partchat/internal/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_OpenOnMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(&CircuitBreakerConfig{
		MaxFailures:      3,
		Timeout:          time.Second,
		HalfOpenMaxCalls: 1,
	}, nil)

	testErr := errors.New("test error")
	for i := 0; i < 3; i++ {
		assert.Error(t, cb.Execute(func() error { return testErr }))
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	cfg := &CircuitBreakerConfig{
		MaxFailures:      2,
		Timeout:          50 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	}
	testErr := errors.New("test error")

	t.Run("success closes", func(t *testing.T) {
		cb := NewCircuitBreaker(cfg, nil)
		for i := 0; i < 2; i++ {
			_ = cb.Execute(func() error { return testErr })
		}
		time.Sleep(80 * time.Millisecond)

		require.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("failure reopens", func(t *testing.T) {
		cb := NewCircuitBreaker(cfg, nil)
		for i := 0; i < 2; i++ {
			_ = cb.Execute(func() error { return testErr })
		}
		time.Sleep(80 * time.Millisecond)

		assert.Error(t, cb.Execute(func() error { return testErr }))
		assert.Equal(t, StateOpen, cb.State())
	})
}

func TestCircuitBreakerState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitBreakerState(42).String())
}

func fastRetry(attempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:     attempts,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		Multiplier:      2,
		RetryableErrors: func(error) bool { return true },
	}
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(3), nil, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = RetryWithBackoff(context.Background(), fastRetry(2), nil, func() error {
		calls++
		return errors.New("always")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retry attempts (2)")
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_NotRetryable(t *testing.T) {
	cfg := fastRetry(5)
	cfg.RetryableErrors = IsRetryableError

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, nil, func() error {
		calls++
		return &openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "bad request"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetry(5)
	cfg.InitialDelay = time.Second

	calls := 0
	err := RetryWithBackoff(ctx, cfg, nil, func() error {
		calls++
		cancel()
		return errors.New("transient")
	})
	assert.EqualError(t, err, "transient")
	assert.Equal(t, 1, calls)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrCircuitBreakerOpen, false},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("attempt: %w", context.DeadlineExceeded), true},
		{fmt.Errorf("wrapped: %w", context.Canceled), false},
		{fmt.Errorf("llm: %w", &openai.APIError{HTTPStatusCode: http.StatusBadGateway}), true},
		{&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, true},
		{&openai.RequestError{HTTPStatusCode: http.StatusRequestTimeout}, true},
		{&openai.APIError{HTTPStatusCode: http.StatusUnauthorized}, false},
		{&openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "unexpected EOF in prompt"}, false},
		{errors.New("unexpected EOF"), true},
		{errors.New("bad prompt"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryableError(tt.err), "%v", tt.err)
	}
}

type stubProvider struct {
	replies []string
	errs    []error
	calls   int
	delay   time.Duration
	delays  []time.Duration
}

func (s *stubProvider) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	i := s.calls
	s.calls++
	delay := s.delay
	if i < len(s.delays) {
		delay = s.delays[i]
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", errors.New("no reply")
}

func (s *stubProvider) Generate(ctx context.Context, prompt, systemPrompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

func (s *stubProvider) Name() string { return "stub" }

func TestProvider_RetriesTransientErrors(t *testing.T) {
	stub := &stubProvider{
		errs:    []error{&openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable, Message: "busy"}, nil},
		replies: []string{"", "recovered"},
	}
	p := NewProvider(stub, time.Second, &RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
	}, nil, nil)

	out, err := p.Generate(context.Background(), "hi", "sys")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, "stub-resilient", p.Name())
}

func TestProvider_AttemptTimeout(t *testing.T) {
	stub := &stubProvider{delay: time.Second, replies: []string{"late"}}
	p := NewProvider(stub, 20*time.Millisecond, fastRetry(1), nil, nil)

	start := time.Now()
	_, err := p.Chat(context.Background(), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestProvider_RetriesAttemptTimeout(t *testing.T) {
	stub := &stubProvider{
		delays:  []time.Duration{time.Second, 0},
		replies: []string{"", "second try"},
	}
	p := NewProvider(stub, 20*time.Millisecond, &RetryConfig{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
	}, nil, nil)

	out, err := p.Chat(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "second try", out)
	assert.Equal(t, 2, stub.calls)
}

func TestProvider_StopsAtCallerDeadline(t *testing.T) {
	stub := &stubProvider{delay: time.Second}
	p := NewProvider(stub, time.Minute, &RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
	}, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Chat(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, stub.calls)
}

func TestProvider_BreakerOpens(t *testing.T) {
	stub := &stubProvider{errs: []error{
		errors.New("down"), errors.New("down"), errors.New("down"),
	}}
	p := NewProvider(stub, 0, fastRetry(1), &CircuitBreakerConfig{
		MaxFailures:      2,
		Timeout:          time.Minute,
		HalfOpenMaxCalls: 1,
	}, nil)

	for i := 0; i < 2; i++ {
		_, err := p.Chat(context.Background(), nil)
		assert.Error(t, err)
	}
	_, err := p.Chat(context.Background(), nil)
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, StateOpen, p.CircuitBreaker().State())
}
