package service

import (
	"context"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/llm/resilience"
	"github.com/liliang-cn/partchat/internal/repository"
	"github.com/liliang-cn/partchat/internal/session"
)

// DefaultHistoryLimit bounds history listings when no limit is given.
const DefaultHistoryLimit = 50

// MaxHistoryLimit is the largest accepted history page.
const MaxHistoryLimit = 500

// AdminService handles admin operations
type AdminService struct {
	catalog  *repository.CatalogRepository
	history  *repository.HistoryRepository
	sessions session.Store
	strategy string
	breaker  *resilience.CircuitBreaker
}

// NewAdminService creates a new admin service. breaker may be nil when the
// deterministic strategies are in use.
func NewAdminService(
	catalog *repository.CatalogRepository,
	history *repository.HistoryRepository,
	sessions session.Store,
	strategy string,
	breaker *resilience.CircuitBreaker,
) *AdminService {
	return &AdminService{
		catalog:  catalog,
		history:  history,
		sessions: sessions,
		strategy: strategy,
		breaker:  breaker,
	}
}

// ListHistory returns the most recent chat history records, newest first.
func (s *AdminService) ListHistory(ctx context.Context, sessionID string, limit int) ([]*domain.HistoryRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.history.List(ctx, sessionID, limit)
}

// GetStats returns system statistics
func (s *AdminService) GetStats(ctx context.Context) (*domain.Stats, error) {
	parts, products, err := s.catalog.Counts(ctx)
	if err != nil {
		return nil, err
	}
	chats, err := s.history.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalParts:     parts,
		TotalProducts:  products,
		TotalChats:     chats,
		ActiveSessions: active,
		Strategy:       s.strategy,
	}
	if s.breaker != nil {
		stats.CircuitBreaker = s.breaker.State().String()
	}
	return stats, nil
}
