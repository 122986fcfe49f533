package compose

import (
	"context"
	"testing"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	waterValve = domain.Part{
		ID:          1,
		PartNumber:  "PS11752778",
		Name:        "Refrigerator Water Inlet Valve",
		Description: "Controls water flow to the ice maker and dispenser",
		Category:    "Water Valves",
		Price:       49.99,
		InStock:     true,
	}
	iceMaker = domain.Part{
		ID:          2,
		PartNumber:  "PS11755825",
		Name:        "Ice Maker Assembly",
		Description: "Complete ice maker assembly",
		Category:    "Ice Makers",
		Price:       129.5,
		InStock:     false,
	}
	valveGuide = &domain.InstallationGuide{
		PartID:        1,
		Instructions:  "1. Unplug the refrigerator\n2. Shut off the water supply\n3. Replace the valve",
		Difficulty:    "Easy",
		EstimatedTime: "30 minutes",
		ToolsRequired: "Screwdriver, pliers",
	}
	valveCompat = []domain.Compatibility{
		{PartNumber: "PS11752778", ModelNumber: "WRF535SWHZ", ProductName: "French Door Refrigerator", Brand: "Whirlpool"},
		{PartNumber: "PS11752778", ModelNumber: "GFE28GYNFS", ProductName: "French Door Refrigerator", Brand: "GE"},
	}
)

func compose(in Input) string {
	return NewTemplateComposer(nil).Compose(context.Background(), in)
}

func TestTemplateComposer_OutOfScope(t *testing.T) {
	got := compose(Input{
		Text:   "What's the weather today?",
		Intent: domain.Intent{Type: domain.IntentOutOfScope, Confidence: 0.95},
	})
	assert.Equal(t, outOfScopeReply, got)
	assert.Contains(t, got, "refrigerator and dishwasher parts")
}

func TestTemplateComposer_Installation(t *testing.T) {
	got := compose(Input{
		Intent:  domain.Intent{Type: domain.IntentInstallation, Entities: domain.Entities{PartNumber: "PS11752778"}},
		Context: &domain.Context{Parts: []domain.Part{waterValve}, InstallationGuide: valveGuide},
	})

	assert.Contains(t, got, "I'll help you install **PS11752778** - Refrigerator Water Inlet Valve.")
	assert.Contains(t, got, "- **Difficulty:** Easy")
	assert.Contains(t, got, "- **Estimated Time:** 30 minutes")
	assert.Contains(t, got, "- **Tools Required:** Screwdriver, pliers")
	assert.Contains(t, got, valveGuide.Instructions)
	assert.Contains(t, got, "This part is currently **in stock** for **$49.99**.")
	assert.NotContains(t, got, "Video Guide")
	assert.NotContains(t, got, "\n\n\n")
}

func TestTemplateComposer_InstallationOutOfStockWithVideo(t *testing.T) {
	guide := *valveGuide
	guide.VideoURL = "https://example.com/install"

	got := compose(Input{
		Intent:  domain.Intent{Type: domain.IntentInstallation},
		Context: &domain.Context{Parts: []domain.Part{iceMaker}, InstallationGuide: &guide},
	})

	assert.Contains(t, got, "**Video Guide:** https://example.com/install")
	assert.NotContains(t, got, "in stock")
	assert.NotContains(t, got, "\n\n\n")
}

func TestTemplateComposer_InstallationNeedsPartNumber(t *testing.T) {
	got := compose(Input{Intent: domain.Intent{Type: domain.IntentInstallation}})
	assert.Equal(t, installationPrompt, got)
}

func TestTemplateComposer_CompatibilityVerdict(t *testing.T) {
	cc := &domain.Context{Parts: []domain.Part{waterValve}, Compatibility: valveCompat}

	tests := []struct {
		name  string
		model string
		want  string
		not   string
	}{
		{
			name:  "listed model",
			model: "WRF535SWHZ",
			want:  "Your model **WRF535SWHZ** **is compatible** with this part! ✅",
			not:   "may not be in our compatibility list",
		},
		{
			name:  "unlisted model",
			model: "XYZ000000AA",
			want:  "Your model **XYZ000000AA** may not be in our compatibility list. Please verify your model number.",
			not:   "**is compatible**",
		},
		{
			name: "no model given",
			not:  "Your model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compose(Input{
				Intent: domain.Intent{
					Type:     domain.IntentCompatibility,
					Entities: domain.Entities{PartNumber: "PS11752778", ModelNumber: tt.model},
				},
				Context: cc,
			})
			assert.Contains(t, got, "**Compatibility Check for PS11752778**")
			assert.Contains(t, got, "- **WRF535SWHZ** - French Door Refrigerator (Whirlpool)")
			assert.Contains(t, got, "- **GFE28GYNFS** - French Door Refrigerator (GE)")
			assert.Contains(t, got, "- **Status:** ✅ In Stock")
			if tt.want != "" {
				assert.Contains(t, got, tt.want)
			}
			assert.NotContains(t, got, tt.not)
			assert.NotContains(t, got, "\n\n\n")
		})
	}
}

func TestTemplateComposer_CompatibilityWithoutModels(t *testing.T) {
	got := compose(Input{
		Intent:  domain.Intent{Type: domain.IntentCompatibility},
		Context: &domain.Context{Parts: []domain.Part{iceMaker}},
	})
	assert.Contains(t, got, "No compatible models are on record for **Ice Maker Assembly**.")
	assert.Contains(t, got, "- **Price:** $129.50")
	assert.Contains(t, got, "❌ Out of Stock")
}

func TestTemplateComposer_CompatibilityNeedsPart(t *testing.T) {
	got := compose(Input{
		Intent:  domain.Intent{Type: domain.IntentCompatibility, Entities: domain.Entities{PartNumber: "PS00000000"}},
		Context: &domain.Context{},
	})
	assert.Equal(t, compatibilityPrompt, got)
}

func TestTemplateComposer_Troubleshooting(t *testing.T) {
	guide := domain.TroubleshootingGuide{
		ProductType:  "refrigerator",
		Issue:        "Ice maker not working",
		Solution:     "1. Check the water supply\n2. Inspect the inlet valve",
		RelatedParts: "PS11752778, PS11755825,",
	}

	got := compose(Input{
		Intent:  domain.Intent{Type: domain.IntentTroubleshooting, Entities: domain.Entities{Issue: "ice maker"}},
		Context: &domain.Context{Troubleshooting: []domain.TroubleshootingGuide{guide}, Parts: []domain.Part{waterValve}},
	})

	assert.Contains(t, got, "I can help you troubleshoot this issue with your appliance!")
	assert.Contains(t, got, "**Issue: Ice maker not working**")
	assert.Contains(t, got, guide.Solution)
	assert.Contains(t, got, "**Recommended Parts:**\n- Part PS11752778\n- Part PS11755825\n")
	assert.Contains(t, got, "**Available Parts:**\n- **PS11752778** - Refrigerator Water Inlet Valve ($49.99) - In Stock\n")
	assert.NotContains(t, got, "\n\n\n")
}

func TestTemplateComposer_TroubleshootingNeedsDetails(t *testing.T) {
	got := compose(Input{Intent: domain.Intent{Type: domain.IntentTroubleshooting}})
	assert.Equal(t, troubleshootingPrompt, got)
}

func TestTemplateComposer_ProductSearch(t *testing.T) {
	got := compose(Input{
		Intent:  domain.Intent{Type: domain.IntentProductSearch, Entities: domain.Entities{ProductType: "refrigerator"}},
		Context: &domain.Context{Parts: []domain.Part{waterValve, iceMaker}},
	})
	assert.Contains(t, got, "Here are the refrigerator parts I found:")
	assert.Contains(t, got, "**PS11752778** - Refrigerator Water Inlet Valve\n- Category: Water Valves\n- Price: $49.99\n- Status: ✅ In Stock")
	assert.Contains(t, got, "**PS11755825** - Ice Maker Assembly")

	got = compose(Input{
		Intent:  domain.Intent{Type: domain.IntentProductSearch},
		Context: &domain.Context{Parts: []domain.Part{waterValve}},
	})
	assert.Contains(t, got, "Here are the parts I found:")

	got = compose(Input{Intent: domain.Intent{Type: domain.IntentProductSearch}})
	assert.Equal(t, productSearchPrompt, got)
}

func TestTemplateComposer_General(t *testing.T) {
	got := compose(Input{Intent: domain.Intent{Type: domain.IntentGeneral, Confidence: 0.7}})
	assert.Equal(t, generalReply, got)
}

func TestIsListed(t *testing.T) {
	assert.True(t, IsListed(valveCompat, "GFE28GYNFS"))
	assert.False(t, IsListed(valveCompat, "gfe28gynfs"))
	assert.False(t, IsListed(valveCompat, ""))
	assert.False(t, IsListed(nil, "WRF535SWHZ"))
}
