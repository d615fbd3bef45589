// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
)

// MetadataListInvoiceTemplates describes the list_invoice_templates tool.
var MetadataListInvoiceTemplates = &mcp.Tool{
	Name:        "list_invoice_templates",
	Description: "List the registered invoice templates in evaluation order, optionally filtered by exact category.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Only return templates in this category (case-sensitive).",
			},
		},
	},
}

// InputListInvoiceTemplates is the input for the ListInvoiceTemplates tool.
type InputListInvoiceTemplates struct {
	Category string `json:"category,omitempty"`
}

// OutputListInvoiceTemplates is the output for the ListInvoiceTemplates tool.
type OutputListInvoiceTemplates struct {
	Templates []recognition.Template `json:"templates"`
}

func (t *Tools) ListInvoiceTemplates(_ context.Context, _ *mcp.CallToolRequest, input InputListInvoiceTemplates) (*mcp.CallToolResult, OutputListInvoiceTemplates, error) {
	if input.Category != "" {
		return nil, OutputListInvoiceTemplates{Templates: t.engine.TemplatesByCategory(input.Category)}, nil
	}
	return nil, OutputListInvoiceTemplates{Templates: t.engine.Templates()}, nil
}

// MetadataAddInvoiceTemplate describes the add_invoice_template tool.
var MetadataAddInvoiceTemplate = &mcp.Tool{
	Name: "add_invoice_template",
	Description: "Register a custom invoice template. A template with an existing id replaces " +
		"the old definition in place and keeps its evaluation position; a new id is appended.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"template"},
		"properties": map[string]interface{}{
			"template": map[string]interface{}{
				"type":     "object",
				"required": []string{"id", "name", "category", "confidence_threshold"},
				"properties": map[string]interface{}{
					"id":       map[string]interface{}{"type": "string"},
					"name":     map[string]interface{}{"type": "string"},
					"category": map[string]interface{}{"type": "string"},
					"vendor_patterns": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"field_patterns": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"field": map[string]interface{}{"type": "string"},
								"patterns": map[string]interface{}{
									"type":  "array",
									"items": map[string]interface{}{"type": "string"},
								},
							},
						},
					},
					"layout_indicators": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"confidence_threshold": map[string]interface{}{
						"type":    "number",
						"minimum": 0,
						"maximum": 1,
					},
				},
			},
		},
	},
}

// InputAddInvoiceTemplate is the input for the AddInvoiceTemplate tool.
type InputAddInvoiceTemplate struct {
	Template recognition.Template `json:"template"`
}

// OutputAddInvoiceTemplate is the output for the AddInvoiceTemplate tool.
type OutputAddInvoiceTemplate struct {
	TemplateID string `json:"template_id"`
	// Replaced is true when an existing template with the same id was overwritten.
	Replaced      bool `json:"replaced"`
	TemplateCount int  `json:"template_count"`
}

func (t *Tools) AddInvoiceTemplate(_ context.Context, _ *mcp.CallToolRequest, input InputAddInvoiceTemplate) (*mcp.CallToolResult, OutputAddInvoiceTemplate, error) {
	replaced, err := t.engine.PutTemplate(input.Template)
	if err != nil {
		return nil, OutputAddInvoiceTemplate{}, err
	}
	return nil, OutputAddInvoiceTemplate{
		TemplateID:    input.Template.ID,
		Replaced:      replaced,
		TemplateCount: t.engine.Store().Len(),
	}, nil
}

// MetadataRemoveInvoiceTemplate describes the remove_invoice_template tool.
var MetadataRemoveInvoiceTemplate = &mcp.Tool{
	Name:        "remove_invoice_template",
	Description: "Remove a registered invoice template by id. Reports whether a template was removed.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"template_id"},
		"properties": map[string]interface{}{
			"template_id": map[string]interface{}{
				"type":        "string",
				"description": "ID of the template to remove.",
			},
		},
	},
}

// InputRemoveInvoiceTemplate is the input for the RemoveInvoiceTemplate tool.
type InputRemoveInvoiceTemplate struct {
	TemplateID string `json:"template_id"`
}

// OutputRemoveInvoiceTemplate is the output for the RemoveInvoiceTemplate tool.
type OutputRemoveInvoiceTemplate struct {
	Removed bool `json:"removed"`
}

func (t *Tools) RemoveInvoiceTemplate(_ context.Context, _ *mcp.CallToolRequest, input InputRemoveInvoiceTemplate) (*mcp.CallToolResult, OutputRemoveInvoiceTemplate, error) {
	if input.TemplateID == "" {
		return nil, OutputRemoveInvoiceTemplate{}, fmt.Errorf("template_id is required")
	}
	return nil, OutputRemoveInvoiceTemplate{Removed: t.engine.RemoveTemplate(input.TemplateID)}, nil
}
