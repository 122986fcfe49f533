package service

import (
	"context"
	"errors"
	"testing"

	"github.com/liliang-cn/partchat/internal/compose"
	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iceMakerInstructions = `Ice Maker Installation Steps:
1. Unplug refrigerator and turn off water supply
2. Remove ice bin from freezer compartment
3. Locate ice maker mounting bracket on left wall of freezer
4. Disconnect electrical harness from old ice maker
5. Remove mounting screws and lift out old ice maker
6. Position new ice maker on mounting bracket
7. Secure with mounting screws (do not overtighten)
8. Connect electrical harness until it clicks
9. Turn on water supply and check for leaks
10. Plug in refrigerator and wait 24 hours for first ice batch

Important: Ensure water line is properly connected and has adequate pressure (20-120 psi).`

func TestChatService_InstallEndToEnd(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	sess, err := f.chat.CreateSession(ctx)
	require.NoError(t, err)

	resp, err := f.chat.Chat(ctx, &domain.ChatRequest{SessionID: sess.ID, Message: "How do I install PS11752778?"})
	require.NoError(t, err)

	assert.Equal(t, sess.ID, resp.SessionID)
	assert.Equal(t, domain.IntentInstallation, resp.Intent.Type)
	assert.Equal(t, 0.95, resp.Intent.Confidence)
	assert.Equal(t, "PS11752778", resp.Intent.Entities.PartNumber)

	assert.Contains(t, resp.Response, "Moderate")
	assert.Contains(t, resp.Response, "30-45 minutes")
	assert.Contains(t, resp.Response, "Phillips screwdriver, adjustable wrench, towels")
	assert.Contains(t, resp.Response, iceMakerInstructions)
	assert.Contains(t, resp.Response, "**$129.99**")
	assert.Equal(t, []string{"PS11752778"}, partNumbers(resp.SuggestedParts))

	transcript, err := f.chat.History(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, transcript.Messages, 2)
	assert.Equal(t, domain.RoleUser, transcript.Messages[0].Role)
	assert.Equal(t, "How do I install PS11752778?", transcript.Messages[0].Content)
	assert.Equal(t, resp.Response, transcript.Messages[1].Content)

	records, err := f.history.List(ctx, sess.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "installation", records[0].Intent)
	assert.Equal(t, resp.Response, records[0].BotResponse)
}

func TestChatService_CompatibilityVerdict(t *testing.T) {
	tests := []struct {
		message string
		model   string
		verdict string
	}{
		{
			message: "Is PS11752778 compatible with WRF535SWHZ?",
			model:   "WRF535SWHZ",
			verdict: "Your model **WRF535SWHZ** **is compatible** with this part! ✅",
		},
		{
			message: "Is PS11754026 compatible with my WDT780SAEM1?",
			model:   "WDT780SAEM1",
			verdict: "Your model **WDT780SAEM1** **is compatible** with this part! ✅",
		},
		{
			message: "Will PS11752778 fit my WDT780SAEM1?",
			model:   "WDT780SAEM1",
			verdict: "Your model **WDT780SAEM1** may not be in our compatibility list. Please verify your model number.",
		},
	}

	f := newFixture(t, true)
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			resp, err := f.chat.Chat(context.Background(), &domain.ChatRequest{SessionID: "compat", Message: tt.message})
			require.NoError(t, err)

			assert.Equal(t, domain.IntentCompatibility, resp.Intent.Type)
			assert.Equal(t, tt.model, resp.Intent.Entities.ModelNumber)
			assert.Contains(t, resp.Response, tt.verdict)
		})
	}
}

func TestContextAssembler_SeededModelFromText(t *testing.T) {
	f := newFixture(t, true)
	a := NewContextAssembler(f.catalog, 0, nil)

	in := intent.NewRuleClassifier().Classify(context.Background(), "Which parts are compatible with GFE28GYNFS?")
	require.Equal(t, "GFE28GYNFS", in.Entities.ModelNumber)

	cc := a.Assemble(context.Background(), in)
	require.Len(t, cc.Products, 1)
	assert.Equal(t, "GE Refrigerator", cc.Products[0].Name)
	assert.NotEmpty(t, cc.CompatibleParts)
}

func TestChatService_Troubleshooting(t *testing.T) {
	f := newFixture(t, true)

	resp, err := f.chat.Chat(context.Background(), &domain.ChatRequest{
		SessionID: "s-1",
		Message:   "My ice maker is not working. How can I fix it?",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IntentTroubleshooting, resp.Intent.Type)
	assert.Contains(t, resp.Response, "**Issue: Ice maker not working**")
	assert.Contains(t, resp.Response, "- Part PS11752778\n- Part PS11755825")
	assert.Contains(t, resp.Response, "**Available Parts:**")
	assert.Equal(t, []string{"PS11752778", "PS11755825"}, partNumbers(resp.SuggestedParts))
}

func TestChatService_OutOfScope(t *testing.T) {
	f := newFixture(t, true)

	resp, err := f.chat.Chat(context.Background(), &domain.ChatRequest{SessionID: "s-1", Message: "What's the weather today?"})
	require.NoError(t, err)

	assert.Equal(t, domain.IntentOutOfScope, resp.Intent.Type)
	assert.Equal(t, 0.95, resp.Intent.Confidence)
	assert.Contains(t, resp.Response, "specifically designed to help with refrigerator and dishwasher parts")
	assert.NotNil(t, resp.SuggestedParts)
	assert.Empty(t, resp.SuggestedParts)
}

func TestChatService_UnknownSessionIsCreated(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.chat.Chat(ctx, &domain.ChatRequest{SessionID: "client-made-up", Message: "Is my refrigerator OK?"})
	require.NoError(t, err)
	_, err = f.chat.Chat(ctx, &domain.ChatRequest{SessionID: "client-made-up", Message: "hello"})
	require.NoError(t, err)

	transcript, err := f.chat.History(ctx, "client-made-up")
	require.NoError(t, err)
	assert.Len(t, transcript.Messages, 4)
}

func TestChatService_EmptySessionStartsOne(t *testing.T) {
	f := newFixture(t, true)

	resp, err := f.chat.Chat(context.Background(), &domain.ChatRequest{Message: "Is my refrigerator OK?"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, domain.IntentGeneral, resp.Intent.Type)
	assert.Equal(t, 0.70, resp.Intent.Confidence)
}

func TestChatService_RejectsEmptyMessage(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.chat.Chat(context.Background(), &domain.ChatRequest{SessionID: "s-1", Message: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestChatService_ClearSession(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	sess, err := f.chat.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, f.chat.ClearSession(ctx, sess.ID))

	_, err = f.chat.History(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, f.chat.ClearSession(ctx, "never-existed"))
}

type brokenSessions struct{}

func (brokenSessions) Create(context.Context) (*domain.Session, error) {
	return nil, errors.New("redis: connection refused")
}
func (brokenSessions) Ensure(context.Context, string) (*domain.Session, error) {
	return nil, errors.New("redis: connection refused")
}
func (brokenSessions) Get(context.Context, string) (*domain.Session, error) {
	return nil, errors.New("redis: connection refused")
}
func (brokenSessions) Append(context.Context, string, domain.Message) error {
	return errors.New("redis: connection refused")
}
func (brokenSessions) Delete(context.Context, string) error { return nil }
func (brokenSessions) Count(context.Context) (int, error) { return 0, nil }
func (brokenSessions) Close() error { return nil }

type brokenHistory struct{ calls int }

func (h *brokenHistory) Save(context.Context, *domain.HistoryRecord) error {
	h.calls++
	return errors.New("disk full")
}

func TestChatService_StorageFailuresAreNotSurfaced(t *testing.T) {
	f := newFixture(t, true)
	history := &brokenHistory{}
	chat := NewChatService(
		intent.NewRuleClassifier(),
		NewContextAssembler(f.catalog, 0, nil),
		compose.NewTemplateComposer(nil),
		brokenSessions{},
		history,
		nil,
	)

	resp, err := chat.Chat(context.Background(), &domain.ChatRequest{SessionID: "s-1", Message: "How do I install PS11752778?"})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentInstallation, resp.Intent.Type)
	assert.Contains(t, resp.Response, iceMakerInstructions)
	assert.Equal(t, 1, history.calls)
}

type stubClassifier struct{ in domain.Intent }

func (s stubClassifier) Classify(context.Context, string) domain.Intent { return s.in }

type historyCapture struct{ got compose.Input }

func (c *historyCapture) Compose(_ context.Context, in compose.Input) string {
	c.got = in
	return "ok"
}

func TestChatService_PassesPriorTurnsToComposer(t *testing.T) {
	f := newFixture(t, true)
	capture := &historyCapture{}
	chat := NewChatService(
		stubClassifier{in: domain.Intent{Type: domain.IntentGeneral, Confidence: 0.7}},
		NewContextAssembler(f.catalog, 0, nil),
		capture,
		f.sessions,
		f.history,
		nil,
	)
	ctx := context.Background()

	_, err := chat.Chat(ctx, &domain.ChatRequest{SessionID: "s-1", Message: "first"})
	require.NoError(t, err)
	assert.Empty(t, capture.got.History)

	_, err = chat.Chat(ctx, &domain.ChatRequest{SessionID: "s-1", Message: "second"})
	require.NoError(t, err)
	require.Len(t, capture.got.History, 2)
	assert.Equal(t, "first", capture.got.History[0].Content)
	assert.Equal(t, "ok", capture.got.History[1].Content)
	assert.Equal(t, "second", capture.got.Text)
}
