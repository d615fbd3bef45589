// SPDX-License-Identifier: Apache-2.0

package recognition

import (
	"slices"
	"strings"
)

// FieldPattern lists the label-text variants expected near one semantic
// field (e.g. "total") on a given layout.
type FieldPattern struct {
	Field    string   `json:"field" yaml:"field"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// Template describes one known vendor/invoice layout.
type Template struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	// VendorPatterns are matched against the canonical OCR text and the
	// extracted vendor name.
	VendorPatterns []string `json:"vendor_patterns" yaml:"vendor_patterns,omitempty"`
	// FieldPatterns keep declaration order; provenance output depends on it.
	FieldPatterns       []FieldPattern `json:"field_patterns" yaml:"field_patterns,omitempty"`
	LayoutIndicators    []string       `json:"layout_indicators" yaml:"layout_indicators,omitempty"`
	ConfidenceThreshold float64        `json:"confidence_threshold" yaml:"confidence_threshold"`
}

// clone returns a deep copy so stored rules can only change by replacement.
func (t Template) clone() Template {
	out := t
	out.VendorPatterns = slices.Clone(t.VendorPatterns)
	out.LayoutIndicators = slices.Clone(t.LayoutIndicators)
	if t.FieldPatterns != nil {
		out.FieldPatterns = make([]FieldPattern, len(t.FieldPatterns))
		for i, fp := range t.FieldPatterns {
			out.FieldPatterns[i] = FieldPattern{
				Field:    fp.Field,
				Patterns: slices.Clone(fp.Patterns),
			}
		}
	}
	return out
}

// TemplateMatch is the result of a successful recognition.
type TemplateMatch struct {
	TemplateID   string  `json:"template_id"`
	TemplateName string  `json:"template_name"`
	Confidence   float64 `json:"confidence"`
	// MatchedPatterns lists every literal pattern found in the text,
	// tagged by signal, e.g. "vendor: amazon" or "field(total): amount due".
	MatchedPatterns []string `json:"matched_patterns"`
}

// Invoice is the partially extracted structured record produced by the
// field extractor. Only VendorName is consulted here; nil means the
// extractor found no vendor, which is distinct from an empty name.
type Invoice struct {
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Date          string  `json:"date,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	VendorName    *string `json:"vendor_name,omitempty"`
}

// vendorName returns the lower-cased vendor name, if one was extracted.
func (inv *Invoice) vendorName() (string, bool) {
	if inv == nil || inv.VendorName == nil {
		return "", false
	}
	return strings.ToLower(*inv.VendorName), true
}
