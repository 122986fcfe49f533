package domain

import "strings"

// Part is a replaceable component sold from the catalog.
type Part struct {
	ID          int64   `json:"id"`
	PartNumber  string  `json:"part_number"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"in_stock"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Product is an appliance model that parts can fit.
type Product struct {
	ID          int64  `json:"id"`
	ModelNumber string `json:"model_number"`
	Name        string `json:"name"`
	Type        string `json:"type"` // Refrigerator, Dishwasher
	Brand       string `json:"brand"`
	Description string `json:"description"`
}

// Compatibility is one part/model edge as seen from the part side.
type Compatibility struct {
	PartNumber  string `json:"part_number"`
	ModelNumber string `json:"model_number"`
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Type        string `json:"type"`
}

// InstallationGuide belongs to at most one part.
type InstallationGuide struct {
	ID            int64  `json:"id"`
	PartID        int64  `json:"part_id"`
	Instructions  string `json:"instructions"`
	Difficulty    string `json:"difficulty"`
	EstimatedTime string `json:"estimated_time"`
	ToolsRequired string `json:"tools_required"`
	VideoURL      string `json:"video_url,omitempty"`
}

// TroubleshootingGuide is keyed by product type and issue.
type TroubleshootingGuide struct {
	ID           int64  `json:"id"`
	ProductType  string `json:"product_type"`
	Issue        string `json:"issue"`
	Solution     string `json:"solution"`
	RelatedParts string `json:"related_parts,omitempty"` // comma separated part numbers
}

// RelatedPartNumbers splits RelatedParts, dropping blank entries.
func (g TroubleshootingGuide) RelatedPartNumbers() []string {
	var out []string
	for _, ref := range strings.Split(g.RelatedParts, ",") {
		if ref = strings.TrimSpace(ref); ref != "" {
			out = append(out, ref)
		}
	}
	return out
}

// PartFilter narrows a part listing.
type PartFilter struct {
	Category string
	Search   string
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Type  string
	Brand string
}

// CompatibilityCheck is the answer to a part/model fit question.
type CompatibilityCheck struct {
	Compatible  bool   `json:"compatible"`
	PartNumber  string `json:"partNumber"`
	ModelNumber string `json:"modelNumber"`
}
