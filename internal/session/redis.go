package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/redis/go-redis/v9"
)

const messagesSuffix = ":messages"

// RedisStore keeps sessions in Redis: a hash with the session metadata and a
// list of JSON encoded messages, both expiring after the TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. The store owns the client and
// closes it on Close.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) metaKey(id string) string     { return s.prefix + id }
func (s *RedisStore) messagesKey(id string) string { return s.prefix + id + messagesSuffix }

// touch refreshes the expiry of both session keys inside a pipeline.
func (s *RedisStore) touch(ctx context.Context, pipe redis.Pipeliner, id string) {
	if s.ttl <= 0 {
		return
	}
	pipe.Expire(ctx, s.metaKey(id), s.ttl)
	pipe.Expire(ctx, s.messagesKey(id), s.ttl)
}

func (s *RedisStore) Create(ctx context.Context) (*domain.Session, error) {
	return s.Ensure(ctx, uuid.New().String())
}

func (s *RedisStore) Ensure(ctx context.Context, id string) (*domain.Session, error) {
	now := time.Now().UTC()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, s.metaKey(id), "id", id)
		pipe.HSetNX(ctx, s.metaKey(id), "created_at", now.Format(time.RFC3339Nano))
		s.touch(ctx, pipe, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure session: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	meta, err := s.client.HGetAll(ctx, s.metaKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(meta) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	sess := &domain.Session{ID: id, Messages: []domain.Message{}}
	if created, err := time.Parse(time.RFC3339Nano, meta["created_at"]); err == nil {
		sess.CreatedAt = created
	}

	raw, err := s.client.LRange(ctx, s.messagesKey(id), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load session messages: %w", err)
	}
	for _, item := range raw {
		var msg domain.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode session message: %w", err)
		}
		sess.Messages = append(sess.Messages, msg)
	}
	return sess, nil
}

func (s *RedisStore) Append(ctx context.Context, id string, msg domain.Message) error {
	exists, err := s.client.Exists(ctx, s.metaKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return domain.ErrSessionNotFound
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode session message: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, s.messagesKey(id), data)
		s.touch(ctx, pipe, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append session message: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.metaKey(id), s.messagesKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Count scans the key space under the prefix and counts session hashes.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan sessions: %w", err)
		}
		for _, k := range keys {
			if !strings.HasSuffix(k, messagesSuffix) {
				n++
			}
		}
		if next == 0 {
			return n, nil
		}
		cursor = next
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
