// SPDX-License-Identifier: Apache-2.0

package recognition

// BuiltinTemplates returns the rule set every engine starts with unless
// constructed WithoutBuiltins. Patterns are matched against canonical
// text, so punctuation inside a pattern ("at&t") only ever matches the
// extracted vendor name.
func BuiltinTemplates() []Template {
	return []Template{
		{
			ID:             "amazon-business",
			Name:           "Amazon Order Invoice",
			Category:       "E-commerce/Cloud",
			VendorPatterns: []string{"amazon", "amazon com", "amazon business"},
			FieldPatterns: []FieldPattern{
				{Field: "order_number", Patterns: []string{"order", "order number"}},
				{Field: "total", Patterns: []string{"order total", "grand total"}},
				{Field: "seller", Patterns: []string{"sold by"}},
			},
			LayoutIndicators:    []string{"billing address", "shipping address", "payment method"},
			ConfidenceThreshold: 0.5,
		},
		{
			ID:             "aws-billing",
			Name:           "AWS Monthly Bill",
			Category:       "E-commerce/Cloud",
			VendorPatterns: []string{"amazon web services", "aws"},
			FieldPatterns: []FieldPattern{
				{Field: "invoice_number", Patterns: []string{"invoice number", "invoice id"}},
				{Field: "account", Patterns: []string{"account number", "account id"}},
				{Field: "total", Patterns: []string{"total amount due", "amount due"}},
			},
			LayoutIndicators:    []string{"billing period", "service provider", "charges by service"},
			ConfidenceThreshold: 0.5,
		},
		{
			ID:             "microsoft-invoice",
			Name:           "Microsoft Invoice",
			Category:       "Software/SaaS",
			VendorPatterns: []string{"microsoft", "microsoft corporation", "azure", "office 365"},
			FieldPatterns: []FieldPattern{
				{Field: "invoice_number", Patterns: []string{"invoice number", "document number"}},
				{Field: "date", Patterns: []string{"invoice date", "billing date"}},
				{Field: "total", Patterns: []string{"total amount", "amount due"}},
			},
			LayoutIndicators:    []string{"billing period", "billing profile", "sold to", "bill to"},
			ConfidenceThreshold: 0.5,
		},
		{
			ID:             "google-workspace",
			Name:           "Google Workspace Invoice",
			Category:       "Software/SaaS",
			VendorPatterns: []string{"google", "google llc", "google workspace", "google cloud"},
			FieldPatterns: []FieldPattern{
				{Field: "invoice_number", Patterns: []string{"invoice number"}},
				{Field: "date", Patterns: []string{"invoice date", "issue date"}},
				{Field: "total", Patterns: []string{"total in usd", "amount due"}},
			},
			LayoutIndicators:    []string{"billing id", "summary for", "domain name"},
			ConfidenceThreshold: 0.5,
		},
		{
			ID:             "utility-bill",
			Name:           "Utility Statement",
			Category:       "Utilities",
			VendorPatterns: []string{"electric", "power", "energy", "gas and electric"},
			FieldPatterns: []FieldPattern{
				{Field: "account", Patterns: []string{"account number"}},
				{Field: "total", Patterns: []string{"amount due", "total due"}},
				{Field: "date", Patterns: []string{"due date", "statement date"}},
			},
			LayoutIndicators:    []string{"kwh", "meter reading", "service address", "usage history"},
			ConfidenceThreshold: 0.45,
		},
		{
			ID:             "telecom-wireless",
			Name:           "Wireless Carrier Bill",
			Category:       "Telecommunications",
			VendorPatterns: []string{"verizon", "at&t", "at t", "t mobile", "wireless"},
			FieldPatterns: []FieldPattern{
				{Field: "account", Patterns: []string{"account number"}},
				{Field: "total", Patterns: []string{"total due", "amount due"}},
				{Field: "date", Patterns: []string{"bill date", "due date"}},
			},
			LayoutIndicators:    []string{"monthly charges", "usage summary", "data usage"},
			ConfidenceThreshold: 0.45,
		},
	}
}
