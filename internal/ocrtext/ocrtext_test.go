// SPDX-License-Identifier: Apache-2.0

package ocrtext_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext"
	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext/decoders"
)

// ---------------------------------------------------------------------------
// Pipeline
// ---------------------------------------------------------------------------

func TestPipeline_UnsupportedFormat(t *testing.T) {
	p := ocrtext.NewPipeline() // no decoders registered
	_, err := p.Run(context.Background(), ocrtext.Source{
		Content: []byte("anything"),
		Format:  "hocr",
		ID:      "scan.html",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported OCR format")
}

func TestPipeline_RegisteredDecoders(t *testing.T) {
	assert.Equal(t, []string{"lines", "text"}, decoders.DefaultPipeline().RegisteredDecoders())
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name        string
		source      ocrtext.Source
		wantDecoder string
		wantText    string
		wantLines   int
	}{
		{
			name:        "plain text",
			source:      ocrtext.Source{Content: []byte("INVOICE\n\n  Total: $10  \n")},
			wantDecoder: "text",
			wantText:    "INVOICE\nTotal: $10",
			wantLines:   2,
		},
		{
			name:        "json lines auto-detected",
			source:      ocrtext.Source{Content: []byte(`[{"text":"second","x":5,"y":20},{"text":"first","x":0,"y":0}]`)},
			wantDecoder: "lines",
			wantText:    "first\nsecond",
			wantLines:   2,
		},
		{
			name:        "text hint keeps bracketed text as text",
			source:      ocrtext.Source{Content: []byte("[PAID] Thank you"), Format: "text"},
			wantDecoder: "text",
			wantText:    "[PAID] Thank you",
			wantLines:   1,
		},
		{
			name:        "bracketed text without a hint stays text",
			source:      ocrtext.Source{Content: []byte("[PAID] Thank you")},
			wantDecoder: "text",
			wantText:    "[PAID] Thank you",
			wantLines:   1,
		},
		{
			name: "yaml hint decodes block lines",
			source: ocrtext.Source{
				Content: []byte("- text: second\n  y: 20\n- text: first\n  y: 10\n"),
				Format:  "yaml",
			},
			wantDecoder: "lines",
			wantText:    "first\nsecond",
			wantLines:   2,
		},
		{
			name:        "empty content",
			source:      ocrtext.Source{},
			wantDecoder: "text",
			wantText:    "",
			wantLines:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := decoders.DefaultPipeline().Run(context.Background(), tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDecoder, result.DecoderUsed)
			assert.Equal(t, tt.wantText, result.Text)
			assert.Equal(t, tt.wantLines, result.LineCount)
		})
	}
}

// ---------------------------------------------------------------------------
// LinesDecoder
// ---------------------------------------------------------------------------

func TestLinesDecoder_CanHandle(t *testing.T) {
	d := decoders.NewLinesDecoder()

	assert.True(t, d.CanHandle(ocrtext.Source{Format: "lines"}))
	assert.True(t, d.CanHandle(ocrtext.Source{Format: "JSON"}))
	assert.True(t, d.CanHandle(ocrtext.Source{Content: []byte(` [{"text":"a"}]`)}))
	assert.True(t, d.CanHandle(ocrtext.Source{Format: "yaml"}))
	assert.True(t, d.CanHandle(ocrtext.Source{Format: "yml"}))
	assert.False(t, d.CanHandle(ocrtext.Source{Content: []byte("plain text")}))
	assert.False(t, d.CanHandle(ocrtext.Source{Content: []byte("[1] hello")}))
	assert.False(t, d.CanHandle(ocrtext.Source{Content: []byte("[PAID] AMAZON.COM ORDER #123")}))
	assert.False(t, d.CanHandle(ocrtext.Source{Content: []byte(`[{"text":"a"}]`), Format: "text"}))
}

func TestLinesDecoder_Decode(t *testing.T) {
	d := decoders.NewLinesDecoder()
	src := ocrtext.Source{
		Content: []byte(`
- {text: "Total: $45.00", x: 300, y: 500}
- {text: "Order #123", x: 0, y: 500}
- {text: "   ", x: 0, y: 10}
- {text: "AMAZON.COM", x: 0, y: 0}
`),
		Format: "lines",
	}
	lines, err := d.Decode(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "AMAZON.COM", lines[0].Text)
	assert.Equal(t, "Order #123", lines[1].Text)
	assert.Equal(t, "Total: $45.00", lines[2].Text)
}

func TestLinesDecoder_Decode_Invalid(t *testing.T) {
	_, err := decoders.NewLinesDecoder().Decode(context.Background(), ocrtext.Source{Content: []byte("[unclosed")})
	require.Error(t, err)
}
