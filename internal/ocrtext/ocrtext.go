// SPDX-License-Identifier: Apache-2.0

// Package ocrtext turns the output of an OCR engine into the raw text the
// recognition engine consumes.
package ocrtext

import "context"

// Source describes OCR output handed over by the acquisition step.
type Source struct {
	// Content is the raw OCR output.
	Content []byte
	Format  string
	ID      string
}

// Line is one recognized line of text with its bounding box.
type Line struct {
	Text   string `json:"text" yaml:"text"`
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

type Decoder interface {
	CanHandle(source Source) bool
	Decode(ctx context.Context, source Source) ([]Line, error)
	Name() string
}
