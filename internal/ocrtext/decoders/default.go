// SPDX-License-Identifier: Apache-2.0

package decoders

import "github.com/invoicewiz/invoice-template-mcp/internal/ocrtext"

// DefaultPipeline builds a Pipeline with all decoders registered. The plain
// text decoder accepts anything, so it goes last.
func DefaultPipeline() *ocrtext.Pipeline {
	return ocrtext.NewPipeline(
		NewLinesDecoder(),
		NewPlainDecoder(),
	)
}
