// SPDX-License-Identifier: Apache-2.0

package recognition

import (
	"regexp"
	"strings"
)

var (
	punctuationRun = regexp.MustCompile(`[^\w\s]+`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes OCR text for case- and punctuation-insensitive
// substring matching: lower-case, punctuation runs become a single space,
// whitespace is collapsed and trimmed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	spaced := punctuationRun.ReplaceAllString(lower, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(spaced, " "))
}
