package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/llm"
	"go.uber.org/zap"
)

const systemPrompt = `You are a helpful PartSelect customer support agent specializing in Refrigerator and Dishwasher parts.

CRITICAL RULES:
1. ONLY answer questions about refrigerator and dishwasher parts and repairs
2. If asked about other topics, politely redirect to refrigerator/dishwasher parts
3. Always be specific with part numbers and model compatibility
4. Provide clear, step-by-step instructions when relevant
5. Recommend specific parts from the database when appropriate
6. Be helpful but stay focused on the parts catalog

You have access to:
- Parts database with part numbers, prices, and availability
- Model compatibility information
- Installation guides
- Troubleshooting solutions

Format responses with:
- Clear sections and bullet points
- Part numbers in **bold** (e.g., **PS11752778**)
- Pricing information when relevant
- Links to installation guides
- Safety warnings when appropriate`

const outOfScopeNote = "The user is asking about something outside refrigerator/dishwasher parts. Politely redirect them."

// LLMComposer writes replies with a chat completion model, grounded by a
// rendering of the catalog context.
type LLMComposer struct {
	provider     llm.ChatProvider
	historyTurns int
	logger       *zap.Logger
}

// NewLLMComposer creates a composer backed by provider. At most historyTurns
// earlier session messages are sent along with the question.
func NewLLMComposer(provider llm.ChatProvider, historyTurns int, logger *zap.Logger) *LLMComposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMComposer{provider: provider, historyTurns: historyTurns, logger: logger}
}

// Compose implements Composer.
func (c *LLMComposer) Compose(ctx context.Context, in Input) string {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}
	for _, m := range recent(in.History, c.historyTurns) {
		role := llm.RoleUser
		if m.Role == domain.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: ContextBlock(in.Intent, contextOf(in)) + "\n\nUser question: " + in.Text,
	})

	reply, err := c.provider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		c.logger.Warn("response generation failed", zap.Error(err))
		return FallbackMessage
	}
	if strings.TrimSpace(reply) == "" {
		c.logger.Warn("response generation returned an empty reply")
		return FallbackMessage
	}
	return reply
}

func recent(history []domain.Message, n int) []domain.Message {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

// ContextBlock renders the catalog context as plain text for the model.
func ContextBlock(in domain.Intent, cc *domain.Context) string {
	if in.Type == domain.IntentOutOfScope {
		return outOfScopeNote
	}

	var b strings.Builder
	b.WriteString("Context information:\n\n")

	if len(cc.Parts) > 0 {
		b.WriteString("Relevant Parts:\n")
		for _, p := range cc.Parts {
			fmt.Fprintf(&b, "- Part %s: %s - %s (%s)\n", p.PartNumber, p.Name, formatPrice(p.Price), availability(p.InStock))
			fmt.Fprintf(&b, "  Category: %s, Description: %s\n", p.Category, p.Description)
		}
		b.WriteString("\n")
	}

	if len(cc.Compatibility) > 0 {
		b.WriteString("Compatibility Information:\n")
		fmt.Fprintf(&b, "Part %s is compatible with:\n", cc.Compatibility[0].PartNumber)
		for _, comp := range cc.Compatibility {
			fmt.Fprintf(&b, "- %s (%s)\n", comp.ModelNumber, comp.ProductName)
		}
		b.WriteString("\n")
	}

	if g := cc.InstallationGuide; g != nil {
		b.WriteString("Installation Guide:\n")
		fmt.Fprintf(&b, "Difficulty: %s\n", g.Difficulty)
		fmt.Fprintf(&b, "Estimated Time: %s\n", g.EstimatedTime)
		fmt.Fprintf(&b, "Tools Required: %s\n", g.ToolsRequired)
		if g.VideoURL != "" {
			fmt.Fprintf(&b, "Video: %s\n", g.VideoURL)
		}
		fmt.Fprintf(&b, "Instructions:\n%s\n\n", g.Instructions)
	}

	if len(cc.Troubleshooting) > 0 {
		b.WriteString("Troubleshooting Information:\n")
		for _, ts := range cc.Troubleshooting {
			fmt.Fprintf(&b, "Issue: %s\n", ts.Issue)
			fmt.Fprintf(&b, "Solution:\n%s\n", ts.Solution)
			if ts.RelatedParts != "" {
				fmt.Fprintf(&b, "Related Parts: %s\n", ts.RelatedParts)
			}
			b.WriteString("\n")
		}
	}

	if len(cc.Products) > 0 {
		b.WriteString("Relevant Products:\n")
		for _, p := range cc.Products {
			fmt.Fprintf(&b, "- %s: %s (%s %s)\n", p.ModelNumber, p.Name, p.Brand, p.Type)
		}
		b.WriteString("\n")
	}

	if len(cc.CompatibleParts) > 0 {
		b.WriteString("Compatible Parts:\n")
		for _, p := range cc.CompatibleParts {
			fmt.Fprintf(&b, "- Part %s: %s - %s (%s)\n", p.PartNumber, p.Name, formatPrice(p.Price), availability(p.InStock))
		}
		b.WriteString("\n")
	}

	return b.String()
}
