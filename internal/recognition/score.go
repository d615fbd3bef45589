// SPDX-License-Identifier: Apache-2.0

package recognition

import (
	"fmt"
	"strings"
)

// Signal weights. The composite is always divided by their sum (1.0), so a
// template that declares no patterns for a signal scores 0 on it rather
// than having the weight redistributed.
const (
	VendorWeight = 0.4
	FieldWeight  = 0.3
	LayoutWeight = 0.3
)

// ScoreBreakdown holds the per-signal sub-scores behind a composite score.
type ScoreBreakdown struct {
	TemplateID string  `json:"template_id"`
	Vendor     float64 `json:"vendor"`
	Field      float64 `json:"field"`
	Layout     float64 `json:"layout"`
	Composite  float64 `json:"composite"`
}

// Score returns the weighted composite score of template t against the
// canonical text and the optional extracted invoice.
func Score(canonical string, inv *Invoice, t Template) float64 {
	return breakdown(canonical, inv, t).Composite
}

func breakdown(canonical string, inv *Invoice, t Template) ScoreBreakdown {
	vendor := vendorScore(canonical, inv, t.VendorPatterns)
	field := fieldScore(canonical, t.FieldPatterns)
	layout := ratio(canonical, t.LayoutIndicators)

	total := VendorWeight*vendor + FieldWeight*field + LayoutWeight*layout
	return ScoreBreakdown{
		TemplateID: t.ID,
		Vendor:     vendor,
		Field:      field,
		Layout:     layout,
		Composite:  total / (VendorWeight + FieldWeight + LayoutWeight),
	}
}

func vendorScore(canonical string, inv *Invoice, patterns []string) float64 {
	if len(patterns) == 0 {
		return 0
	}
	vendor, hasVendor := inv.vendorName()

	hits := 0
	for _, p := range patterns {
		p = strings.ToLower(p)
		if strings.Contains(canonical, p) || (hasVendor && strings.Contains(vendor, p)) {
			hits++
		}
	}
	return float64(hits) / float64(len(patterns))
}

func fieldScore(canonical string, fields []FieldPattern) float64 {
	var pool []string
	for _, fp := range fields {
		pool = append(pool, fp.Patterns...)
	}
	return ratio(canonical, pool)
}

// ratio is the fraction of patterns found in the canonical text.
func ratio(canonical string, patterns []string) float64 {
	if len(patterns) == 0 {
		return 0
	}
	hits := 0
	for _, p := range patterns {
		if strings.Contains(canonical, strings.ToLower(p)) {
			hits++
		}
	}
	return float64(hits) / float64(len(patterns))
}

// MatchedPatterns lists every pattern of t present in the canonical text:
// vendor hits first, then field hits grouped in declaration order, then
// layout hits. It does not consult the extracted vendor name.
func MatchedPatterns(canonical string, t Template) []string {
	matched := []string{}
	for _, p := range t.VendorPatterns {
		if strings.Contains(canonical, strings.ToLower(p)) {
			matched = append(matched, "vendor: "+p)
		}
	}
	for _, fp := range t.FieldPatterns {
		for _, p := range fp.Patterns {
			if strings.Contains(canonical, strings.ToLower(p)) {
				matched = append(matched, fmt.Sprintf("field(%s): %s", fp.Field, p))
			}
		}
	}
	for _, p := range t.LayoutIndicators {
		if strings.Contains(canonical, strings.ToLower(p)) {
			matched = append(matched, "layout: "+p)
		}
	}
	return matched
}
