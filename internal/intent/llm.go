package intent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/llm"
	"go.uber.org/zap"
)

const classifierPrompt = `You are an intent classifier for PartSelect customer support. Analyze user messages and classify them into one of these categories:
- installation: User asking about how to install a part
- compatibility: User asking if a part works with their appliance model
- troubleshooting: User experiencing an issue with their appliance
- product_search: User looking for specific parts or products
- general: General questions about products or orders
- out_of_scope: Questions not related to refrigerator/dishwasher parts

Extract entities like part numbers (e.g., PS11752778), model numbers (e.g., WDT780SAEM1), product types (refrigerator/dishwasher), and issues.

Respond ONLY with valid JSON in this format:
{
  "type": "category",
  "confidence": 0.95,
  "entities": {
    "partNumber": "PS11752778",
    "modelNumber": "WDT780SAEM1",
    "productType": "refrigerator",
    "issue": "ice maker not working"
  }
}`

// LLMClassifier delegates classification to a chat completion model.
type LLMClassifier struct {
	provider llm.ChatProvider
	logger   *zap.Logger
}

// NewLLMClassifier creates a classifier backed by provider.
func NewLLMClassifier(provider llm.ChatProvider, logger *zap.Logger) *LLMClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMClassifier{provider: provider, logger: logger}
}

// Classify asks the model for an intent. Any failure yields Fallback.
// Entities the model left empty are filled from Extract, so a part or model
// number in the text still drives retrieval.
func (c *LLMClassifier) Classify(ctx context.Context, text string) domain.Intent {
	reply, err := c.provider.Generate(ctx, text, classifierPrompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(500),
		llm.WithJSONMode(),
	)
	if err != nil {
		c.logger.Warn("intent analysis failed", zap.Error(err))
		return Fallback
	}

	in, err := ParseIntent(reply)
	if err != nil {
		c.logger.Warn("unusable intent reply", zap.Error(err), zap.String("reply", reply))
		return Fallback
	}
	if in.Type != domain.IntentOutOfScope {
		fillEntities(&in.Entities, Extract(text))
	}
	return in
}

func fillEntities(dst *domain.Entities, extracted domain.Entities) {
	if dst.PartNumber == "" {
		dst.PartNumber = extracted.PartNumber
	}
	if dst.ModelNumber == "" {
		dst.ModelNumber = extracted.ModelNumber
	}
	if dst.ProductType == "" {
		dst.ProductType = extracted.ProductType
	}
	if dst.Issue == "" {
		dst.Issue = extracted.Issue
	}
}

// ParseIntent decodes a model reply into an Intent. The reply may be wrapped
// in a markdown code fence. Unknown categories are rejected and the
// confidence is clamped to [0, 1].
func ParseIntent(reply string) (domain.Intent, error) {
	var in domain.Intent
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &in); err != nil {
		return domain.Intent{}, err
	}
	if !in.Type.Valid() {
		return domain.Intent{}, &InvalidTypeError{Type: string(in.Type)}
	}

	switch {
	case in.Confidence < 0:
		in.Confidence = 0
	case in.Confidence > 1:
		in.Confidence = 1
	}

	in.Entities.PartNumber = strings.ToUpper(strings.TrimSpace(in.Entities.PartNumber))
	in.Entities.ModelNumber = strings.ToUpper(strings.TrimSpace(in.Entities.ModelNumber))
	in.Entities.ProductType = strings.ToLower(strings.TrimSpace(in.Entities.ProductType))
	in.Entities.Issue = strings.TrimSpace(in.Entities.Issue)
	if in.Type == domain.IntentOutOfScope {
		in.Entities = domain.Entities{}
	}
	return in, nil
}

// InvalidTypeError reports a category outside the known set.
type InvalidTypeError struct {
	Type string
}

func (e *InvalidTypeError) Error() string {
	return "unknown intent type " + strings.TrimSpace(e.Type)
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
