package intent

import (
	"context"
	"strings"

	"github.com/liliang-cn/partchat/internal/domain"
)

var inScopeKeywords = []string{
	"refrigerator", "fridge", "dishwasher", "appliance",
	"ice maker", "water valve", "pump", "filter", "door seal",
	"install", "installation", "compatible", "compatibility", "part",
	"fix", "repair", "broken", "not working", "troubleshoot",
	"whirlpool", "ge", "lg", "samsung", "maytag", "frigidaire",
	"not draining", "not cooling", "leaking", "noisy", "not cleaning",
}

var (
	installationKeywords    = []string{"install", "installation"}
	compatibilityKeywords   = []string{"compatible", "compatibility", "work with", "fit"}
	troubleshootingKeywords = []string{"not working", "broken", "fix", "repair", "problem", "issue", "not draining", "not cooling"}
	searchKeywords          = []string{"show me", "find", "looking for", "need"}
)

const (
	defaultIssue       = "general issue"
	defaultProductType = "refrigerator"
)

// message is the input a rule sees: the lower-cased text and its entities.
type message struct {
	lower    string
	entities domain.Entities
}

// rule is one step of the cascade: match decides, build produces the intent.
type rule struct {
	name  string
	match func(m message) bool
	build func(m message) domain.Intent
}

// rules is the ordered cascade; the first matching rule wins.
// The scope gate must stay first.
var rules = []rule{
	{
		name:  "scope_gate",
		match: func(m message) bool {
			return !containsAny(m.lower, inScopeKeywords) &&
				m.entities.PartNumber == "" &&
				m.entities.ModelNumber == ""
		},
		build: func(message) domain.Intent {
			return domain.Intent{Type: domain.IntentOutOfScope, Confidence: 0.95}
		},
	},
	{
		name:  "installation",
		match: keywordRule(installationKeywords),
		build: func(m message) domain.Intent {
			return domain.Intent{
				Type:       domain.IntentInstallation,
				Confidence: 0.95,
				Entities:   domain.Entities{PartNumber: m.entities.PartNumber},
			}
		},
	},
	{
		name:  "compatibility",
		match: keywordRule(compatibilityKeywords),
		build: func(m message) domain.Intent {
			return domain.Intent{
				Type:       domain.IntentCompatibility,
				Confidence: 0.95,
				Entities: domain.Entities{
					PartNumber:  m.entities.PartNumber,
					ModelNumber: m.entities.ModelNumber,
				},
			}
		},
	},
	{
		name:  "troubleshooting",
		match: keywordRule(troubleshootingKeywords),
		build: func(m message) domain.Intent {
			return domain.Intent{
				Type:       domain.IntentTroubleshooting,
				Confidence: 0.90,
				Entities: domain.Entities{
					Issue:       orDefault(m.entities.Issue, defaultIssue),
					ProductType: orDefault(m.entities.ProductType, defaultProductType),
				},
			}
		},
	},
	{
		name:  "product_search",
		match: keywordRule(searchKeywords),
		build: func(m message) domain.Intent {
			return domain.Intent{
				Type:       domain.IntentProductSearch,
				Confidence: 0.85,
				Entities:   domain.Entities{ProductType: m.entities.ProductType},
			}
		},
	},
	{
		name:  "general",
		match: func(message) bool { return true },
		build: func(message) domain.Intent {
			return domain.Intent{Type: domain.IntentGeneral, Confidence: 0.70}
		},
	},
}

func keywordRule(keywords []string) func(message) bool {
	return func(m message) bool { return containsAny(m.lower, keywords) }
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// RuleClassifier is the deterministic keyword cascade.
type RuleClassifier struct {
	rules []rule
}

// NewRuleClassifier creates the keyword cascade classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{rules: rules}
}

// Classify evaluates the rules in order. Identical input always yields an
// identical intent.
func (c *RuleClassifier) Classify(_ context.Context, text string) domain.Intent {
	in, _ := c.Explain(text)
	return in
}

// Explain classifies text and also returns the name of the rule that fired.
func (c *RuleClassifier) Explain(text string) (domain.Intent, string) {
	m := message{lower: strings.ToLower(text), entities: Extract(text)}
	for _, r := range c.rules {
		if r.match(m) {
			return r.build(m), r.name
		}
	}
	return domain.Intent{Type: domain.IntentGeneral, Confidence: 0.70}, "general"
}
