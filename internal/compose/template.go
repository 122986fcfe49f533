package compose

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/liliang-cn/partchat/internal/domain"
	"go.uber.org/zap"
)

const outOfScopeReply = `I appreciate your question, but I'm specifically designed to help with refrigerator and dishwasher parts. I can assist you with:

- Finding the right parts for your appliance
- Installation instructions
- Compatibility checks
- Troubleshooting common issues

How can I help you with refrigerator or dishwasher parts today?`

const installationPrompt = `I can help you with installation instructions! To provide specific guidance, I need:

1. The part number (e.g., PS11752778)
2. Your appliance model number (optional but helpful)

Could you provide the part number you'd like to install?`

const compatibilityPrompt = `I can check part compatibility for you! Please provide:

1. **Part number** (e.g., PS11752778)
2. **Your appliance model number** (e.g., WDT780SAEM1)

This will help me verify if the part fits your appliance.`

const troubleshootingPrompt = `I understand you're experiencing an issue. To help you better, could you provide more details?

- What appliance? (Refrigerator or Dishwasher)
- What's the specific problem?
- Your model number (if available)

Common issues I can help with:
- Ice maker not working
- Not cooling properly
- Not draining
- Poor cleaning performance`

const productSearchPrompt = `I can help you find parts! What are you looking for?

Popular categories:
- Ice Maker parts
- Water valves and filters
- Dishwasher spray arms
- Pumps and motors
- Door gaskets and seals
- Temperature controls

Let me know what you need!`

const generalReply = `Hello! I'm your PartSelect assistant specializing in refrigerator and dishwasher parts.

I can help you with:
✅ **Installation Instructions** - Step-by-step guides for installing parts
✅ **Compatibility Checks** - Verify if parts work with your appliance model
✅ **Troubleshooting** - Diagnose and fix common issues
✅ **Part Search** - Find the right parts for your needs

**Example questions:**
- "How do I install part number PS11752778?"
- "Is PS11754026 compatible with my WDT780SAEM1?"
- "My ice maker is not working. How can I fix it?"
- "Show me dishwasher spray arms"

How can I assist you today?`

const installationTmpl = `I'll help you install {{if .Part}}**{{.Part.PartNumber}}** - {{.Part.Name}}{{else}}this part{{end}}.

**Installation Details:**
- **Difficulty:** {{.Guide.Difficulty}}
- **Estimated Time:** {{.Guide.EstimatedTime}}
- **Tools Required:** {{.Guide.ToolsRequired}}

**Step-by-Step Instructions:**

{{.Guide.Instructions}}
{{with .Guide.VideoURL}}
**Video Guide:** {{.}}
{{end}}
**Safety Tips:**
- Always unplug the appliance before starting
- Turn off water supply if applicable
- Have towels ready for any water spillage
- Don't overtighten screws
{{if and .Part .Part.InStock}}
This part is currently **in stock** for **{{price .Part.Price}}**.
{{end}}
Need any clarification on specific steps? Feel free to ask!`

const compatibilityTmpl = `**Compatibility Check for {{.Part.PartNumber}}**

{{if .Compatibility}}✅ **{{.Part.Name}}** is compatible with the following models:

{{range .Compatibility}}- **{{.ModelNumber}}** - {{.ProductName}} ({{.Brand}})
{{end}}{{else}}No compatible models are on record for **{{.Part.Name}}**.
{{end}}
**Part Details:**
- **Category:** {{.Part.Category}}
- **Price:** {{price .Part.Price}}
- **Status:** {{status .Part.InStock}}
- **Description:** {{.Part.Description}}
{{with .ModelNumber}}
Your model **{{.}}** {{if $.Compatible}}**is compatible** with this part! ✅{{else}}may not be in our compatibility list. Please verify your model number.{{end}}
{{end}}
Would you like installation instructions for this part?`

const troubleshootingTmpl = `I can help you troubleshoot this issue with your {{or .ProductType "appliance"}}!

**Issue: {{.Guide.Issue}}**

{{.Guide.Solution}}
{{with .RelatedParts}}
**Recommended Parts:**
{{range .}}- Part {{.}}
{{end}}{{end}}{{with .Parts}}
**Available Parts:**
{{range .}}- **{{.PartNumber}}** - {{.Name}} ({{price .Price}}) - {{availability .InStock}}
{{end}}{{end}}
Have you tried these steps? Let me know if you need more specific guidance!`

const productSearchTmpl = `Here are the {{with .ProductType}}{{.}} {{end}}parts I found:

{{range .Parts}}**{{.PartNumber}}** - {{.Name}}
- Category: {{.Category}}
- Price: {{price .Price}}
- Status: {{status .InStock}}
- Description: {{.Description}}

{{end}}Would you like more information about any of these parts, such as:
- Installation instructions
- Compatibility with your model
- Detailed specifications`

var templateFuncs = template.FuncMap{
	"price":        formatPrice,
	"status":       stockStatus,
	"availability": availability,
}

var (
	installationView    = template.Must(template.New("installation").Funcs(templateFuncs).Parse(installationTmpl))
	compatibilityView   = template.Must(template.New("compatibility").Funcs(templateFuncs).Parse(compatibilityTmpl))
	troubleshootingView = template.Must(template.New("troubleshooting").Funcs(templateFuncs).Parse(troubleshootingTmpl))
	productSearchView   = template.Must(template.New("product_search").Funcs(templateFuncs).Parse(productSearchTmpl))
)

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func stockStatus(inStock bool) string {
	if inStock {
		return "✅ In Stock"
	}
	return "❌ Out of Stock"
}

func availability(inStock bool) string {
	if inStock {
		return "In Stock"
	}
	return "Out of Stock"
}

// TemplateComposer renders fixed markdown replies from the catalog context.
// It makes no external calls.
type TemplateComposer struct {
	logger *zap.Logger
}

// NewTemplateComposer creates a templated composer.
func NewTemplateComposer(logger *zap.Logger) *TemplateComposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateComposer{logger: logger}
}

// Compose implements Composer.
func (c *TemplateComposer) Compose(_ context.Context, in Input) string {
	cc := contextOf(in)
	entities := in.Intent.Entities

	switch in.Intent.Type {
	case domain.IntentOutOfScope:
		return outOfScopeReply

	case domain.IntentInstallation:
		if cc.InstallationGuide == nil {
			return installationPrompt
		}
		data := struct {
			Part  *domain.Part
			Guide *domain.InstallationGuide
		}{Guide: cc.InstallationGuide}
		if len(cc.Parts) > 0 {
			data.Part = &cc.Parts[0]
		}
		return c.render(installationView, data)

	case domain.IntentCompatibility:
		if len(cc.Parts) == 0 {
			return compatibilityPrompt
		}
		return c.render(compatibilityView, struct {
			Part          domain.Part
			Compatibility []domain.Compatibility
			ModelNumber   string
			Compatible    bool
		}{
			Part:          cc.Parts[0],
			Compatibility: cc.Compatibility,
			ModelNumber:   entities.ModelNumber,
			Compatible:    IsListed(cc.Compatibility, entities.ModelNumber),
		})

	case domain.IntentTroubleshooting:
		if len(cc.Troubleshooting) == 0 {
			return troubleshootingPrompt
		}
		guide := cc.Troubleshooting[0]
		return c.render(troubleshootingView, struct {
			ProductType  string
			Guide        domain.TroubleshootingGuide
			RelatedParts []string
			Parts        []domain.Part
		}{
			ProductType:  entities.ProductType,
			Guide:        guide,
			RelatedParts: guide.RelatedPartNumbers(),
			Parts:        cc.Parts,
		})

	case domain.IntentProductSearch:
		if len(cc.Parts) == 0 {
			return productSearchPrompt
		}
		return c.render(productSearchView, struct {
			ProductType string
			Parts       []domain.Part
		}{ProductType: entities.ProductType, Parts: cc.Parts})

	default:
		return generalReply
	}
}

func (c *TemplateComposer) render(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		c.logger.Error("failed to render reply", zap.String("template", t.Name()), zap.Error(err))
		return FallbackMessage
	}
	return b.String()
}

// IsListed reports whether modelNumber appears exactly in the compatibility
// list. An empty model number is never listed.
func IsListed(list []domain.Compatibility, modelNumber string) bool {
	if modelNumber == "" {
		return false
	}
	for _, c := range list {
		if c.ModelNumber == modelNumber {
			return true
		}
	}
	return false
}
