package intent

import (
	"regexp"
	"strings"

	"github.com/liliang-cn/partchat/internal/domain"
)

var (
	partNumberPattern = regexp.MustCompile(`(?i)PS\d{8}`)
	// Brand prefix, digit run, letter suffix, optional revision digits:
	// WRF535SWHZ, WDT780SAEM1, GFE28GYNFS, LFXS26973S. Part numbers never
	// match because their digits run to the end of the token.
	modelNumberPattern = regexp.MustCompile(`(?i)\b[A-Z]{2,4}\d{2,6}[A-Z]{1,5}\d{0,2}\b`)
)

type phrase struct {
	match string
	value string
}

// productTypeVocabulary is checked in order; the first hit wins.
var productTypeVocabulary = []phrase{
	{"refrigerator", "refrigerator"},
	{"fridge", "refrigerator"},
	{"dishwasher", "dishwasher"},
}

// issueVocabulary is checked in order; the first hit wins.
var issueVocabulary = []phrase{
	{"ice maker", "ice maker not working"},
	{"not draining", "not draining"},
	{"not cooling", "not cooling"},
	{"not cleaning", "poor cleaning performance"},
}

// Extract pulls at most one candidate of each entity kind out of text.
// Part and model numbers are returned upper-cased.
func Extract(text string) domain.Entities {
	lower := strings.ToLower(text)
	return domain.Entities{
		PartNumber:  strings.ToUpper(partNumberPattern.FindString(text)),
		ModelNumber: strings.ToUpper(modelNumberPattern.FindString(text)),
		ProductType: firstPhrase(lower, productTypeVocabulary),
		Issue:       firstPhrase(lower, issueVocabulary),
	}
}

func firstPhrase(lower string, vocabulary []phrase) string {
	for _, p := range vocabulary {
		if strings.Contains(lower, p.match) {
			return p.value
		}
	}
	return ""
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
