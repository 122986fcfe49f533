package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply  string
	err    error
	prompt string
	system string
	opts   llm.CallOptions
}

func (f *fakeProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) Generate(_ context.Context, prompt, systemPrompt string, opts ...llm.Option) (string, error) {
	f.prompt = prompt
	f.system = systemPrompt
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f.reply, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func TestLLMClassifier_Classify(t *testing.T) {
	p := &fakeProvider{reply: "```json\n" + `{
		"type": "compatibility",
		"confidence": 0.92,
		"entities": {"partNumber": "ps11754026", "modelNumber": "wdt780saem1", "productType": "Dishwasher"}
	}` + "\n```"}

	got := NewLLMClassifier(p, nil).Classify(context.Background(), "does PS11754026 fit my WDT780SAEM1")

	assert.Equal(t, domain.IntentCompatibility, got.Type)
	assert.Equal(t, 0.92, got.Confidence)
	assert.Equal(t, "PS11754026", got.Entities.PartNumber)
	assert.Equal(t, "WDT780SAEM1", got.Entities.ModelNumber)
	assert.Equal(t, "dishwasher", got.Entities.ProductType)

	assert.Equal(t, "does PS11754026 fit my WDT780SAEM1", p.prompt)
	assert.Contains(t, p.system, "out_of_scope")
	require.NotNil(t, p.opts.Temperature)
	assert.Equal(t, 0.1, *p.opts.Temperature)
	assert.Equal(t, 500, p.opts.MaxTokens)
	assert.True(t, p.opts.JSONMode)
}

func TestLLMClassifier_FillsMissedEntities(t *testing.T) {
	p := &fakeProvider{reply: `{"type": "installation", "confidence": 0.9, "entities": {"productType": "dishwasher"}}`}

	got := NewLLMClassifier(p, nil).Classify(context.Background(), "how do I put in ps11752778 on my fridge WRF535SWHZ")

	assert.Equal(t, domain.Entities{
		PartNumber:  "PS11752778",
		ModelNumber: "WRF535SWHZ",
		ProductType: "dishwasher",
	}, got.Entities)
}

func TestLLMClassifier_OutOfScopeKeepsNoEntities(t *testing.T) {
	p := &fakeProvider{reply: `{"type": "out_of_scope", "confidence": 0.99}`}

	got := NewLLMClassifier(p, nil).Classify(context.Background(), "what is PS11752778 in french")

	assert.Equal(t, domain.IntentOutOfScope, got.Type)
	assert.Equal(t, domain.Entities{}, got.Entities)
}

func TestLLMClassifier_FailSoft(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "transport error", err: errors.New("llm: status code 500")},
		{name: "not json", reply: "I think it is about installation"},
		{name: "unknown type", reply: `{"type": "weather", "confidence": 0.9}`},
		{name: "empty", reply: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLLMClassifier(&fakeProvider{reply: tt.reply, err: tt.err}, nil)
			got := c.Classify(context.Background(), "anything")
			assert.Equal(t, domain.IntentGeneral, got.Type)
			assert.Equal(t, 0.5, got.Confidence)
		})
	}
}

func TestParseIntent(t *testing.T) {
	in, err := ParseIntent(`{"type": "troubleshooting", "confidence": 1.7, "entities": {"issue": " not draining "}}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, in.Confidence)
	assert.Equal(t, "not draining", in.Entities.Issue)

	in, err = ParseIntent("```\n{\"type\": \"out_of_scope\", \"confidence\": 0.9, \"entities\": {\"issue\": \"weather\"}}\n```")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentOutOfScope, in.Type)
	assert.Equal(t, domain.Entities{}, in.Entities)

	_, err = ParseIntent(`{"type": "chitchat"}`)
	var typeErr *InvalidTypeError
	assert.ErrorAs(t, err, &typeErr)
}
