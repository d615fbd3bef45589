// SPDX-License-Identifier: Apache-2.0

package ocrtext

import (
	"context"
	"fmt"
	"strings"
)

type Pipeline struct {
	decoders []Decoder
}

// NewPipeline creates a Pipeline that tries decoders in the given order.
func NewPipeline(decoders ...Decoder) *Pipeline {
	return &Pipeline{decoders: decoders}
}

// Result is the output of a successful decode.
type Result struct {
	Text        string
	DecoderUsed string
	LineCount   int
}

// Text decodes source and returns its lines joined by newlines.
func (p *Pipeline) Text(ctx context.Context, source Source) (string, error) {
	result, err := p.Run(ctx, source)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func (p *Pipeline) Run(ctx context.Context, source Source) (Result, error) {
	decoder, err := p.selectDecoder(source)
	if err != nil {
		return Result{}, err
	}

	lines, err := decoder.Decode(ctx, source)
	if err != nil {
		return Result{}, fmt.Errorf("decoder %q failed: %w", decoder.Name(), err)
	}

	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	return Result{
		Text:        strings.Join(texts, "\n"),
		DecoderUsed: decoder.Name(),
		LineCount:   len(lines),
	}, nil
}

// selectDecoder returns the first registered decoder that can handle the given source.
func (p *Pipeline) selectDecoder(source Source) (Decoder, error) {
	for _, decoder := range p.decoders {
		if decoder.CanHandle(source) {
			return decoder, nil
		}
	}
	return nil, fmt.Errorf("unsupported OCR format: no decoder found for source %q (format hint: %q)", source.ID, source.Format)
}

// RegisteredDecoders returns the names of all currently registered decoders.
func (p *Pipeline) RegisteredDecoders() []string {
	names := make([]string, len(p.decoders))
	for i, decoder := range p.decoders {
		names[i] = decoder.Name()
	}
	return names
}
