// SPDX-License-Identifier: Apache-2.0

package recognition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
)

const amazonOCR = "AMAZON.COM ORDER #123 ORDER TOTAL: $45.00 SOLD BY AMAZON BILLING ADDRESS"

func strPtr(s string) *string { return &s }

func acmeTemplate(id string, threshold float64) recognition.Template {
	return recognition.Template{
		ID:             id,
		Name:           "Acme " + id,
		Category:       "Industrial",
		VendorPatterns: []string{"acme"},
		FieldPatterns: []recognition.FieldPattern{
			{Field: "total", Patterns: []string{"amount due"}},
		},
		LayoutIndicators:    []string{"remit to"},
		ConfidenceThreshold: threshold,
	}
}

// ---------------------------------------------------------------------------
// Normalize
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "punctuation becomes token boundary", in: "AMAZON.COM ORDER #123", want: "amazon com order 123"},
		{name: "whitespace collapsed and trimmed", in: "  Hello,   World!! ", want: "hello world"},
		{name: "tabs and newlines", in: "Total:\t$45.00\nDue", want: "total 45 00 due"},
		{name: "underscore is a word character", in: "invoice_no: 7", want: "invoice_no 7"},
		{name: "only punctuation", in: "$$$ ---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recognition.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		amazonOCR,
		"Pacific Gas & Electric | Statement Date: 01/02/2026",
		"  AT&T   Wireless\r\n\tMonthly Charges ",
		"Ünïcödé Rechnung Nr. 42",
	}
	for _, in := range inputs {
		once := recognition.Normalize(in)
		assert.Equal(t, once, recognition.Normalize(once), "input %q", in)
	}
}

// ---------------------------------------------------------------------------
// Score
// ---------------------------------------------------------------------------

func TestScore_EmptyTemplateScoresZero(t *testing.T) {
	empty := recognition.Template{ID: "empty", Name: "Empty"}
	assert.Equal(t, 0.0, recognition.Score(recognition.Normalize(amazonOCR), nil, empty))
	assert.Equal(t, 0.0, recognition.Score("", &recognition.Invoice{VendorName: strPtr("Amazon")}, empty))
}

func TestScore_WeightsAndFixedDenominator(t *testing.T) {
	tmpl := acmeTemplate("acme", 0)

	// Only the vendor signal fires: missing signals are not redistributed.
	assert.InDelta(t, 0.4, recognition.Score("acme industries", nil, tmpl), 1e-9)
	assert.InDelta(t, 0.7, recognition.Score("acme amount due", nil, tmpl), 1e-9)
	assert.InDelta(t, 1.0, recognition.Score("acme amount due remit to", nil, tmpl), 1e-9)

	noFields := tmpl
	noFields.FieldPatterns = nil
	assert.InDelta(t, 0.7, recognition.Score("acme amount due remit to", nil, noFields), 1e-9,
		"a template without field patterns is capped below 1")
}

func TestScore_VendorNameCountsAsVendorHit(t *testing.T) {
	tmpl := acmeTemplate("acme", 0)
	tmpl.VendorPatterns = []string{"acme", "acme corp"}

	inv := &recognition.Invoice{VendorName: strPtr("ACME Corp Ltd")}
	assert.InDelta(t, 0.4, recognition.Score("unrelated text", inv, tmpl), 1e-9)

	// An extracted empty vendor name is present but matches nothing.
	assert.Equal(t, 0.0, recognition.Score("unrelated text", &recognition.Invoice{VendorName: strPtr("")}, tmpl))
}

func TestScore_PatternsAreCaseInsensitive(t *testing.T) {
	tmpl := acmeTemplate("acme", 0)
	tmpl.VendorPatterns = []string{"ACME"}
	assert.InDelta(t, 0.4, recognition.Score(recognition.Normalize("Acme"), nil, tmpl), 1e-9)
}

// ---------------------------------------------------------------------------
// MatchedPatterns
// ---------------------------------------------------------------------------

func TestMatchedPatterns_Order(t *testing.T) {
	tmpl := recognition.Template{
		ID:             "ordered",
		Name:           "Ordered",
		VendorPatterns: []string{"globex", "missing vendor"},
		FieldPatterns: []recognition.FieldPattern{
			{Field: "total", Patterns: []string{"amount due", "balance"}},
			{Field: "date", Patterns: []string{"invoice date"}},
		},
		LayoutIndicators: []string{"remit to"},
	}
	canonical := recognition.Normalize("Remit to: GLOBEX. Invoice Date 1/1. Balance: 10. Amount due: 10")

	assert.Equal(t, []string{
		"vendor: globex",
		"field(total): amount due",
		"field(total): balance",
		"field(date): invoice date",
		"layout: remit to",
	}, recognition.MatchedPatterns(canonical, tmpl))
}

func TestMatchedPatterns_NoHits(t *testing.T) {
	got := recognition.MatchedPatterns("nothing here", acmeTemplate("acme", 0))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---------------------------------------------------------------------------
// Engine.Recognize
// ---------------------------------------------------------------------------

func TestRecognize_AmazonScenario(t *testing.T) {
	engine := recognition.NewEngine()

	match, ok := engine.Recognize(amazonOCR, nil)
	require.True(t, ok)
	require.NotNil(t, match)

	assert.Equal(t, "amazon-business", match.TemplateID)
	assert.Equal(t, "Amazon Order Invoice", match.TemplateName)
	assert.InDelta(t, 0.4*2/3+0.3*3/5+0.3*1/3, match.Confidence, 1e-9)
	assert.Contains(t, match.MatchedPatterns, "vendor: amazon")
	assert.Equal(t, []string{
		"vendor: amazon",
		"vendor: amazon com",
		"field(order_number): order",
		"field(total): order total",
		"field(seller): sold by",
		"layout: billing address",
	}, match.MatchedPatterns)

	assert.Equal(t, "E-commerce/Cloud", engine.Categorize(match, nil))
}

func TestRecognize_NoMatch(t *testing.T) {
	engine := recognition.NewEngine()

	match, ok := engine.Recognize("hello world", nil)
	assert.False(t, ok)
	assert.Nil(t, match)
	assert.Equal(t, "General", engine.Categorize(nil, nil))
}

func TestRecognize_EmptyInputsAndEmptyStore(t *testing.T) {
	engine := recognition.NewEngine(recognition.WithoutBuiltins())
	assert.Equal(t, 0, engine.Store().Len())

	_, ok := engine.Recognize(amazonOCR, nil)
	assert.False(t, ok)

	_, ok = recognition.NewEngine().Recognize("", nil)
	assert.False(t, ok)
}

func TestRecognize_ScoreMustStrictlyExceedThreshold(t *testing.T) {
	engine := recognition.NewEngine(recognition.WithoutBuiltins())
	require.NoError(t, engine.AddTemplate(acmeTemplate("acme", 0.4)))

	// Vendor-only hit scores exactly 0.4.
	_, ok := engine.Recognize("ACME", nil)
	assert.False(t, ok)

	match, ok := engine.Recognize("ACME amount due", nil)
	require.True(t, ok)
	assert.Greater(t, match.Confidence, 0.4)
}

func TestRecognize_TieKeepsStoreOrder(t *testing.T) {
	engine := recognition.NewEngine(recognition.WithoutBuiltins())
	require.NoError(t, engine.AddTemplate(acmeTemplate("first", 0.1)))
	require.NoError(t, engine.AddTemplate(acmeTemplate("second", 0.1)))

	match, ok := engine.Recognize("acme amount due remit to", nil)
	require.True(t, ok)
	assert.Equal(t, "first", match.TemplateID)
}

func TestRecognize_HigherScoreBeatsEarlierTemplate(t *testing.T) {
	engine := recognition.NewEngine(recognition.WithoutBuiltins())
	weak := acmeTemplate("weak", 0.1)
	weak.LayoutIndicators = []string{"never present"}
	require.NoError(t, engine.AddTemplate(weak))
	require.NoError(t, engine.AddTemplate(acmeTemplate("strong", 0.1)))

	match, ok := engine.Recognize("acme amount due remit to", nil)
	require.True(t, ok)
	assert.Equal(t, "strong", match.TemplateID)
}

func TestRecognize_HighThresholdSkipsBestScorer(t *testing.T) {
	engine := recognition.NewEngine(recognition.WithoutBuiltins())
	require.NoError(t, engine.AddTemplate(acmeTemplate("strict", 1.0)))
	loose := acmeTemplate("loose", 0.2)
	loose.LayoutIndicators = []string{"never present"}
	require.NoError(t, engine.AddTemplate(loose))

	match, ok := engine.Recognize("acme amount due remit to", nil)
	require.True(t, ok)
	assert.Equal(t, "loose", match.TemplateID)
	assert.InDelta(t, 0.7, match.Confidence, 1e-9)
}

func TestRecognize_Deterministic(t *testing.T) {
	engine := recognition.NewEngine()
	inv := &recognition.Invoice{VendorName: strPtr("Amazon.com Services LLC")}

	first, ok := engine.Recognize(amazonOCR, inv)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := engine.Recognize(amazonOCR, inv)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestRecognize_VendorNameOnlyMatchHasNoTextProvenance(t *testing.T) {
	engine := recognition.NewEngine(recognition.WithoutBuiltins())
	tmpl := acmeTemplate("acme", 0.3)
	require.NoError(t, engine.AddTemplate(tmpl))

	match, ok := engine.Recognize("lorem ipsum", &recognition.Invoice{VendorName: strPtr("Acme Inc")})
	require.True(t, ok)
	assert.Equal(t, "acme", match.TemplateID)
	assert.Empty(t, match.MatchedPatterns)
}

func TestExplain(t *testing.T) {
	engine := recognition.NewEngine()
	scores := engine.Explain(amazonOCR, nil)
	require.Len(t, scores, engine.Store().Len())
	assert.Equal(t, "amazon-business", scores[0].TemplateID)
	for _, s := range scores {
		assert.InDelta(t, 0.4*s.Vendor+0.3*s.Field+0.3*s.Layout, s.Composite, 1e-9)
	}
}

// ---------------------------------------------------------------------------
// Engine.Categorize
// ---------------------------------------------------------------------------

func TestCategorize_Fallback(t *testing.T) {
	engine := recognition.NewEngine()

	tests := []struct {
		name   string
		vendor *string
		want   string
	}{
		{name: "no vendor", vendor: nil, want: "General"},
		{name: "empty vendor", vendor: strPtr(""), want: "General"},
		{name: "amazon", vendor: strPtr("Amazon EU S.a.r.l."), want: "E-commerce/Cloud"},
		{name: "aws", vendor: strPtr("AWS EMEA SARL"), want: "E-commerce/Cloud"},
		{name: "microsoft", vendor: strPtr("Microsoft Ireland"), want: "Software/SaaS"},
		{name: "google", vendor: strPtr("Google LLC"), want: "Software/SaaS"},
		{name: "utility", vendor: strPtr("Pacific Gas and Electric Company"), want: "Utilities"},
		{name: "water", vendor: strPtr("City Water Dept"), want: "Utilities"},
		{name: "telecom", vendor: strPtr("AT&T Mobility"), want: "Telecommunications"},
		{name: "wireless", vendor: strPtr("Verizon Wireless"), want: "Telecommunications"},
		{name: "priority order", vendor: strPtr("Google Fiber Wireless"), want: "Software/SaaS"},
		{name: "unknown", vendor: strPtr("Joe's Plumbing"), want: "General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inv *recognition.Invoice
			if tt.vendor != nil {
				inv = &recognition.Invoice{VendorName: tt.vendor}
			}
			assert.Equal(t, tt.want, engine.Categorize(nil, inv))
		})
	}
}

func TestCategorize_PacificGasScenario(t *testing.T) {
	engine := recognition.NewEngine()
	inv := &recognition.Invoice{VendorName: strPtr("Pacific Gas and Electric Company")}

	match, ok := engine.Recognize("thank you for your business", inv)
	assert.False(t, ok)
	assert.Equal(t, "Utilities", engine.Categorize(match, inv))
}

func TestCategorize_MatchUsesTemplateCategory(t *testing.T) {
	engine := recognition.NewEngine()
	match := &recognition.TemplateMatch{TemplateID: "telecom-wireless"}
	inv := &recognition.Invoice{VendorName: strPtr("Google LLC")}

	assert.Equal(t, "Telecommunications", engine.Categorize(match, inv))
}

func TestCategorize_RemovedTemplateFallsBack(t *testing.T) {
	engine := recognition.NewEngine()
	match, ok := engine.Recognize(amazonOCR, nil)
	require.True(t, ok)

	require.True(t, engine.RemoveTemplate(match.TemplateID))
	assert.Equal(t, "General", engine.Categorize(match, nil))
	assert.Equal(t, "Software/SaaS", engine.Categorize(match, &recognition.Invoice{VendorName: strPtr("Google LLC")}))
}

// ---------------------------------------------------------------------------
// Rule store mutation through the engine
// ---------------------------------------------------------------------------

func TestAddTemplate_ReplacesInPlace(t *testing.T) {
	engine := recognition.NewEngine()
	before := engine.Templates()

	replacement := acmeTemplate("microsoft-invoice", 0.9)
	require.NoError(t, engine.AddTemplate(replacement))

	after := engine.Templates()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID, "position %d", i)
	}

	got, ok := engine.Template("microsoft-invoice")
	require.True(t, ok)
	assert.Equal(t, replacement, got)
}

func TestAddTemplate_AppendsNewID(t *testing.T) {
	engine := recognition.NewEngine()
	n := len(engine.Templates())

	require.NoError(t, engine.AddTemplate(acmeTemplate("acme", 0.5)))
	all := engine.Templates()
	require.Len(t, all, n+1)
	assert.Equal(t, "acme", all[n].ID)
}

func TestRemoveTemplate_AbsentID(t *testing.T) {
	engine := recognition.NewEngine()
	before := engine.Templates()

	assert.False(t, engine.RemoveTemplate("does-not-exist"))
	assert.Equal(t, before, engine.Templates())
}

func TestTemplatesByCategory(t *testing.T) {
	engine := recognition.NewEngine()

	saas := engine.TemplatesByCategory("Software/SaaS")
	require.Len(t, saas, 2)
	assert.Equal(t, "microsoft-invoice", saas[0].ID)
	assert.Equal(t, "google-workspace", saas[1].ID)

	assert.Empty(t, engine.TemplatesByCategory("software/saas"), "category match is case-sensitive")
}

func TestWithStore_SharesRules(t *testing.T) {
	store, err := recognition.NewStore(acmeTemplate("acme", 0.1))
	require.NoError(t, err)

	engine := recognition.NewEngine(recognition.WithStore(store), recognition.WithoutBuiltins())
	match, ok := engine.Recognize("acme", nil)
	require.True(t, ok)
	assert.Equal(t, "acme", match.TemplateID)

	assert.True(t, store.Remove("acme"))
	_, ok = engine.Recognize("acme", nil)
	assert.False(t, ok)
}
