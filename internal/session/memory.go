package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/partchat/internal/domain"
	"go.uber.org/zap"
)

type memoryEntry struct {
	session  *domain.Session
	lastSeen time.Time
}

// MemoryStore is an in-process Store. Sessions idle for longer than the TTL
// are evicted by a background janitor and ignored on read.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates a memory store. A zero ttl keeps sessions until they
// are deleted; a zero cleanupInterval disables the janitor.
func NewMemoryStore(ttl, cleanupInterval time.Duration, logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if ttl > 0 && cleanupInterval > 0 {
		go s.janitor(cleanupInterval)
	} else {
		close(s.done)
	}
	return s
}

func (s *MemoryStore) janitor(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.evictExpired(); n > 0 {
				s.logger.Debug("evicted expired sessions", zap.Int("count", n))
			}
		}
	}
}

func (s *MemoryStore) evictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// expired must be called with mu held.
func (s *MemoryStore) expired(e *memoryEntry) bool {
	return s.ttl > 0 && s.now().Sub(e.lastSeen) > s.ttl
}

// lookup returns a live entry, dropping it if it has expired. mu must be held.
func (s *MemoryStore) lookup(id string) *memoryEntry {
	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if s.expired(e) {
		delete(s.sessions, id)
		return nil
	}
	return e
}

func (s *MemoryStore) Create(ctx context.Context) (*domain.Session, error) {
	return s.Ensure(ctx, uuid.New().String())
}

func (s *MemoryStore) Ensure(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(id)
	if e == nil {
		now := s.now()
		e = &memoryEntry{session: &domain.Session{ID: id, CreatedAt: now, Messages: []domain.Message{}}}
		s.sessions[id] = e
	}
	e.lastSeen = s.now()
	return copySession(e.session), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(id)
	if e == nil {
		return nil, domain.ErrSessionNotFound
	}
	return copySession(e.session), nil
}

func (s *MemoryStore) Append(_ context.Context, id string, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(id)
	if e == nil {
		return domain.ErrSessionNotFound
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	e.session.Messages = append(e.session.Messages, msg)
	e.lastSeen = s.now()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.sessions {
		if !s.expired(e) {
			n++
		}
	}
	return n, nil
}

// Close stops the janitor and waits for it to exit.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}
