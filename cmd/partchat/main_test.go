package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "partchat.db")
	t.Setenv("PARTCHAT_DATABASE_PATH", dbPath)
	t.Setenv("PARTCHAT_AI_USE_MOCK", "true")
	t.Setenv("PARTCHAT_LOG_LEVEL", "error")
	t.Setenv("PARTCHAT_SESSION_BACKEND", "memory")
	return dbPath
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		askJSON = false
		askSession = ""
	})
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestSeedCommand(t *testing.T) {
	dbPath := setupEnv(t)

	out := execute(t, "seed")
	assert.Contains(t, out, dbPath)
	assert.Contains(t, out, "8 parts, 5 products")
}

func TestAskCommand(t *testing.T) {
	setupEnv(t)

	out := execute(t, "ask", "How do I install PS11752778?")
	assert.Contains(t, out, "I'll help you install **PS11752778** - Ice Maker Assembly")
	assert.Contains(t, out, "[intent: installation 0.95")
}

func TestAskCommand_JSON(t *testing.T) {
	setupEnv(t)

	out := execute(t, "ask", "--json", "What's", "the", "weather", "today?")

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, domain.IntentOutOfScope, resp.Intent.Type)
	assert.NotEmpty(t, resp.SessionID)
	assert.Empty(t, resp.SuggestedParts)
}
