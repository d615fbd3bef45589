// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext"
)

// LinesDecoder reads positioned OCR lines, as JSON or YAML, and returns
// them in reading order (top to bottom, then left to right).
type LinesDecoder struct{}

func NewLinesDecoder() *LinesDecoder {
	return &LinesDecoder{}
}

func (d *LinesDecoder) Name() string {
	return "lines"
}

// CanHandle returns true for the "lines", "json", "yaml" and "yml" format
// hints. Unhinted content is only claimed when it is an array that decodes
// into lines, so OCR text that merely starts with '[' stays plain text.
func (d *LinesDecoder) CanHandle(source ocrtext.Source) bool {
	switch strings.ToLower(source.Format) {
	case "lines", "json", "yaml", "yml":
		return true
	case "":
	default:
		return false
	}
	if !strings.HasPrefix(strings.TrimSpace(string(source.Content)), "[") {
		return false
	}
	_, err := unmarshalLines(source.Content)
	return err == nil
}

func (d *LinesDecoder) Decode(_ context.Context, source ocrtext.Source) ([]ocrtext.Line, error) {
	lines, err := unmarshalLines(source.Content)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, l := range lines {
		l.Text = strings.TrimSpace(l.Text)
		if l.Text != "" {
			kept = append(kept, l)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y < kept[j].Y
		}
		return kept[i].X < kept[j].X
	})
	return kept, nil
}

func unmarshalLines(content []byte) ([]ocrtext.Line, error) {
	var lines []ocrtext.Line
	if err := yaml.Unmarshal(content, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OCR lines: %w", err)
	}
	return lines, nil
}
