// SPDX-License-Identifier: Apache-2.0

package recognition

import "strings"

// DefaultCategory is returned when neither a match nor a vendor keyword
// yields a category.
const DefaultCategory = "General"

// vendorCategoryRule maps trigger keywords in a vendor name to a category.
type vendorCategoryRule struct {
	keywords []string
	category string
}

// vendorCategoryRules is evaluated in order; the first match wins.
var vendorCategoryRules = []vendorCategoryRule{
	{keywords: []string{"amazon", "aws"}, category: "E-commerce/Cloud"},
	{keywords: []string{"microsoft", "google"}, category: "Software/SaaS"},
	{keywords: []string{"electric", "gas", "water"}, category: "Utilities"},
	{keywords: []string{"verizon", "at&t", "wireless"}, category: "Telecommunications"},
}

// categorizeVendor applies the keyword fallback to an extracted invoice.
func categorizeVendor(inv *Invoice) string {
	vendor, ok := inv.vendorName()
	if !ok {
		return DefaultCategory
	}
	for _, rule := range vendorCategoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(vendor, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}
