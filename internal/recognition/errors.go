// SPDX-License-Identifier: Apache-2.0

package recognition

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier attached to engine errors.
type Code string

const (
	CodeTemplateInvalid      Code = "template.validate.invalid"
	CodeTemplateNotFound     Code = "template.get.not_found"
	CodeTemplateLoadFailure  Code = "template.load.read_failure"
	CodeTemplateParseInvalid Code = "template.load.parse_invalid"
)

// ErrInvalidTemplate is wrapped by every template validation failure.
var ErrInvalidTemplate = errors.New("invalid template")

// CodeOf returns the code carried by err, or "" when it has none.
func CodeOf(err error) Code {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	switch c := oopsErr.Code().(type) {
	case Code:
		return c
	case string:
		return Code(c)
	case nil:
		return ""
	default:
		return Code(fmt.Sprintf("%v", c))
	}
}

// IsInvalidTemplate reports whether err stems from a rejected template
// definition, either at registration or while loading a rule file.
func IsInvalidTemplate(err error) bool {
	if errors.Is(err, ErrInvalidTemplate) {
		return true
	}
	code := CodeOf(err)
	return code == CodeTemplateInvalid || code == CodeTemplateParseInvalid
}

// Validate checks that t is well formed enough to be stored.
func Validate(t Template) error {
	var problems []error
	if t.ID == "" {
		problems = append(problems, errors.New("id is required"))
	}
	if t.Name == "" {
		problems = append(problems, errors.New("name is required"))
	}
	if t.ConfidenceThreshold < 0 || t.ConfidenceThreshold > 1 {
		problems = append(problems, fmt.Errorf("confidence_threshold %v is outside [0,1]", t.ConfidenceThreshold))
	}
	for i, p := range t.VendorPatterns {
		if p == "" {
			problems = append(problems, fmt.Errorf("vendor_patterns[%d] is empty", i))
		}
	}
	for i, fp := range t.FieldPatterns {
		if fp.Field == "" {
			problems = append(problems, fmt.Errorf("field_patterns[%d] has no field name", i))
		}
		for j, p := range fp.Patterns {
			if p == "" {
				problems = append(problems, fmt.Errorf("field_patterns[%d].patterns[%d] is empty", i, j))
			}
		}
	}
	for i, p := range t.LayoutIndicators {
		if p == "" {
			problems = append(problems, fmt.Errorf("layout_indicators[%d] is empty", i))
		}
	}
	if len(problems) == 0 {
		return nil
	}

	return oops.
		Code(CodeTemplateInvalid).
		With("template_id", t.ID).
		Wrapf(errors.Join(append([]error{ErrInvalidTemplate}, problems...)...), "validating template %q", t.ID)
}
