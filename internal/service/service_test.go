package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/liliang-cn/partchat/internal/compose"
	"github.com/liliang-cn/partchat/internal/intent"
	"github.com/liliang-cn/partchat/internal/repository"
	"github.com/liliang-cn/partchat/internal/session"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *repository.DB
	catalog  *repository.CatalogRepository
	history  *repository.HistoryRepository
	sessions *session.MemoryStore
	chat     *ChatService
}

func newFixture(t *testing.T, seed bool) *fixture {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "partchat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	if seed {
		require.NoError(t, repository.Seed(context.Background(), db))
	}

	f := &fixture{
		db:       db,
		catalog:  repository.NewCatalogRepository(db),
		history:  repository.NewHistoryRepository(db),
		sessions: session.NewMemoryStore(0, 0, nil),
	}
	t.Cleanup(func() { f.sessions.Close() })

	f.chat = NewChatService(
		intent.NewRuleClassifier(),
		NewContextAssembler(f.catalog, 0, nil),
		compose.NewTemplateComposer(nil),
		f.sessions,
		f.history,
		nil,
	)
	return f
}
