// SPDX-License-Identifier: Apache-2.0

// Package rules reads invoice templates from YAML rule files. Every file is
// checked against an embedded CUE schema before any of its templates reach
// a store, so a malformed file never leaves a rule set half-registered.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/goccy/go-yaml"
	"github.com/samber/oops"

	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
)

//go:embed schema.cue
var schemaSource string

// ruleFile is the on-disk layout of a rule file.
type ruleFile struct {
	Templates []recognition.Template `yaml:"templates"`
}

// Registrar is anything templates can be registered with.
type Registrar interface {
	AddTemplate(t recognition.Template) error
}

// LoadFile reads and parses the rule file at path.
func LoadFile(path string) ([]recognition.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.
			Code(recognition.CodeTemplateLoadFailure).
			With("path", path).
			Wrapf(err, "reading rule file")
	}
	return Parse(data, path)
}

// Parse validates data against the rule file schema and decodes its
// templates. source names the input in error messages.
func Parse(data []byte, source string) ([]recognition.Template, error) {
	if err := validateSchema(data, source); err != nil {
		return nil, err
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, parseError(source, fmt.Errorf("failed to unmarshal rule file: %w", err))
	}

	seen := make(map[string]bool, len(file.Templates))
	for _, t := range file.Templates {
		if err := recognition.Validate(t); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, parseError(source, fmt.Errorf("duplicate template id %q", t.ID))
		}
		seen[t.ID] = true
	}
	return file.Templates, nil
}

// LoadInto loads the rule file at path and registers every template with r,
// returning how many were registered.
func LoadInto(r Registrar, path string) (int, error) {
	templates, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	for i, t := range templates {
		if err := r.AddTemplate(t); err != nil {
			return i, err
		}
	}
	return len(templates), nil
}

// Marshal renders templates in rule file layout.
func Marshal(templates []recognition.Template) ([]byte, error) {
	out, err := yaml.Marshal(ruleFile{Templates: templates})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule file: %w", err)
	}
	return out, nil
}

func validateSchema(data []byte, source string) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return parseError(source, fmt.Errorf("failed to unmarshal YAML: %w", err))
	}
	if doc == nil {
		return parseError(source, errors.New("rule file is empty"))
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling rule file schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#RuleFile")).Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return parseError(source, errors.New(cueerrors.Details(err, nil)))
	}
	return nil
}

func parseError(source string, err error) error {
	return oops.
		Code(recognition.CodeTemplateParseInvalid).
		With("source", source).
		Wrapf(err, "parsing rule file %s", source)
}
