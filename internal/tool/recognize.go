// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext"
	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext/decoders"
	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
)

// Tools exposes a recognition engine as MCP tools.
type Tools struct {
	engine   *recognition.Engine
	pipeline *ocrtext.Pipeline
}

// New creates Tools backed by engine.
func New(engine *recognition.Engine) *Tools {
	return &Tools{engine: engine, pipeline: decoders.DefaultPipeline()}
}

// Register adds every invoice template tool to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, MetadataRecognizeInvoiceTemplate, t.RecognizeInvoiceTemplate)
	mcp.AddTool(server, MetadataCategorizeInvoice, t.CategorizeInvoice)
	mcp.AddTool(server, MetadataListInvoiceTemplates, t.ListInvoiceTemplates)
	mcp.AddTool(server, MetadataAddInvoiceTemplate, t.AddInvoiceTemplate)
	mcp.AddTool(server, MetadataRemoveInvoiceTemplate, t.RemoveInvoiceTemplate)
}

// MetadataRecognizeInvoiceTemplate describes the recognize_invoice_template tool.
var MetadataRecognizeInvoiceTemplate = &mcp.Tool{
	Name: "recognize_invoice_template",
	Description: "Identify which known invoice layout or vendor a piece of OCR text came from. " +
		"Every registered template is scored on vendor names (40%), field labels (30%) and " +
		"layout phrases (30%); the highest-scoring template that clears its own confidence " +
		"threshold is returned together with the literal patterns that matched and the " +
		"derived invoice category. When no template qualifies, matched is false and the " +
		"category comes from vendor-name keywords.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"ocr_text"},
		"properties": map[string]interface{}{
			"ocr_text": map[string]interface{}{
				"type":        "string",
				"description": "Raw OCR text of the invoice, or a JSON array of positioned lines when format is \"lines\".",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format of ocr_text. One of: text, lines. If omitted, auto-detection is used.",
				"enum":        []string{"text", "lines"},
			},
			"vendor_name": map[string]interface{}{
				"type":        "string",
				"description": "Optional vendor name already extracted from the invoice.",
			},
			"explain": map[string]interface{}{
				"type":        "boolean",
				"description": "Include the per-template score breakdown in the output.",
			},
		},
	},
}

// InputRecognizeInvoiceTemplate is the input for the RecognizeInvoiceTemplate tool.
type InputRecognizeInvoiceTemplate struct {
	OCRText    string  `json:"ocr_text"`
	Format     string  `json:"format,omitempty"`
	VendorName *string `json:"vendor_name,omitempty"`
	Explain    bool    `json:"explain,omitempty"`
}

// OutputRecognizeInvoiceTemplate is the output for the RecognizeInvoiceTemplate tool.
type OutputRecognizeInvoiceTemplate struct {
	Matched bool `json:"matched"`
	// Match is nil when no template cleared its threshold.
	Match    *recognition.TemplateMatch `json:"match,omitempty"`
	Category string                     `json:"category"`
	// Scores is only populated when explain was requested.
	Scores []recognition.ScoreBreakdown `json:"scores,omitempty"`
}

// RecognizeInvoiceTemplate matches OCR text against the registered templates.
func (t *Tools) RecognizeInvoiceTemplate(ctx context.Context, _ *mcp.CallToolRequest, input InputRecognizeInvoiceTemplate) (*mcp.CallToolResult, OutputRecognizeInvoiceTemplate, error) {
	text, err := t.pipeline.Text(ctx, ocrtext.Source{
		Content: []byte(input.OCRText),
		Format:  input.Format,
		ID:      "ocr_text",
	})
	if err != nil {
		return nil, OutputRecognizeInvoiceTemplate{}, err
	}

	inv := invoiceFor(input.VendorName)
	match, ok := t.engine.Recognize(text, inv)

	out := OutputRecognizeInvoiceTemplate{
		Matched:  ok,
		Match:    match,
		Category: t.engine.Categorize(match, inv),
	}
	if input.Explain {
		out.Scores = t.engine.Explain(text, inv)
	}
	return nil, out, nil
}

// MetadataCategorizeInvoice describes the categorize_invoice tool.
var MetadataCategorizeInvoice = &mcp.Tool{
	Name: "categorize_invoice",
	Description: "Derive a category label for an invoice. If template_id names a registered " +
		"template its category is used; otherwise the vendor name is checked against " +
		"keyword lists (E-commerce/Cloud, Software/SaaS, Utilities, Telecommunications), " +
		"falling back to General.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"template_id": map[string]interface{}{
				"type":        "string",
				"description": "ID of a previously matched template.",
			},
			"vendor_name": map[string]interface{}{
				"type":        "string",
				"description": "Extracted vendor name used by the keyword fallback.",
			},
		},
	},
}

// InputCategorizeInvoice is the input for the CategorizeInvoice tool.
type InputCategorizeInvoice struct {
	TemplateID string  `json:"template_id,omitempty"`
	VendorName *string `json:"vendor_name,omitempty"`
}

// OutputCategorizeInvoice is the output for the CategorizeInvoice tool.
type OutputCategorizeInvoice struct {
	Category string `json:"category"`
}

func (t *Tools) CategorizeInvoice(_ context.Context, _ *mcp.CallToolRequest, input InputCategorizeInvoice) (*mcp.CallToolResult, OutputCategorizeInvoice, error) {
	var match *recognition.TemplateMatch
	if input.TemplateID != "" {
		match = &recognition.TemplateMatch{TemplateID: input.TemplateID}
	}
	return nil, OutputCategorizeInvoice{
		Category: t.engine.Categorize(match, invoiceFor(input.VendorName)),
	}, nil
}

func invoiceFor(vendorName *string) *recognition.Invoice {
	if vendorName == nil {
		return nil
	}
	return &recognition.Invoice{VendorName: vendorName}
}
