// Package session keeps the per-conversation message log.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/liliang-cn/partchat/internal/config"
	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store holds conversation sessions. Implementations are safe for
// concurrent use and append each message atomically.
type Store interface {
	// Create starts a session with a fresh id.
	Create(ctx context.Context) (*domain.Session, error)
	// Ensure returns the session with id, creating it when missing.
	Ensure(ctx context.Context, id string) (*domain.Session, error)
	// Get returns a snapshot of the session or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Append(ctx context.Context, id string, msg domain.Message) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// New builds the store selected by cfg.Session.Backend.
func New(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval, logger), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func copySession(s *domain.Session) *domain.Session {
	out := &domain.Session{ID: s.ID, CreatedAt: s.CreatedAt}
	out.Messages = make([]domain.Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}
