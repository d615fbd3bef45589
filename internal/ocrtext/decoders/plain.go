// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"
	"strings"

	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext"
)

// PlainDecoder treats the content as already-extracted text, one line per
// newline. It accepts anything and should be registered last.
type PlainDecoder struct{}

func NewPlainDecoder() *PlainDecoder {
	return &PlainDecoder{}
}

func (d *PlainDecoder) Name() string {
	return "text"
}

func (d *PlainDecoder) CanHandle(_ ocrtext.Source) bool {
	return true
}

func (d *PlainDecoder) Decode(_ context.Context, source ocrtext.Source) ([]ocrtext.Line, error) {
	var lines []ocrtext.Line
	for i, raw := range strings.Split(string(source.Content), "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, ocrtext.Line{Text: text, Y: i})
	}
	return lines, nil
}
