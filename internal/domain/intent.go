package domain

// IntentType is the classified purpose of one user turn.
type IntentType string

const (
	IntentInstallation    IntentType = "installation"
	IntentCompatibility   IntentType = "compatibility"
	IntentTroubleshooting IntentType = "troubleshooting"
	IntentProductSearch   IntentType = "product_search"
	IntentGeneral         IntentType = "general"
	IntentOutOfScope      IntentType = "out_of_scope"
)

// IntentTypes lists every category a classifier may emit.
var IntentTypes = []IntentType{
	IntentInstallation,
	IntentCompatibility,
	IntentTroubleshooting,
	IntentProductSearch,
	IntentGeneral,
	IntentOutOfScope,
}

// Valid reports whether t is one of the known categories.
func (t IntentType) Valid() bool {
	for _, known := range IntentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Entities are the structured values lifted from a message.
// An empty string means the entity is absent.
type Entities struct {
	PartNumber  string `json:"partNumber,omitempty"`
	ModelNumber string `json:"modelNumber,omitempty"`
	ProductType string `json:"productType,omitempty"`
	Issue       string `json:"issue,omitempty"`
}

// Intent is the result of classifying a single message.
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
	Entities   Entities   `json:"entities"`
}

// Context is the bounded set of catalog records used to ground one reply.
// Fields stay empty when nothing matched; they are never filled with placeholders.
type Context struct {
	Parts             []Part                 `json:"parts,omitempty"`
	Compatibility     []Compatibility        `json:"compatibility,omitempty"`
	InstallationGuide *InstallationGuide     `json:"installationGuide,omitempty"`
	Troubleshooting   []TroubleshootingGuide `json:"troubleshooting,omitempty"`
	Products          []Product              `json:"products,omitempty"`
	CompatibleParts   []Part                 `json:"compatibleParts,omitempty"`
}

// Empty reports whether no field of the context was populated.
func (c *Context) Empty() bool {
	return c == nil || (len(c.Parts) == 0 &&
		len(c.Compatibility) == 0 &&
		c.InstallationGuide == nil &&
		len(c.Troubleshooting) == 0 &&
		len(c.Products) == 0 &&
		len(c.CompatibleParts) == 0)
}
