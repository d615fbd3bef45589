// SPDX-License-Identifier: Apache-2.0

// Package recognition identifies which known invoice layout a piece of OCR
// text came from. Each template is scored on three signals (vendor names,
// field labels and layout phrases) and the best template that clears its
// own confidence threshold wins.
package recognition

import (
	"log/slog"
)

// Engine runs template recognition and categorization over a Store.
type Engine struct {
	store    *Store
	logger   *slog.Logger
	builtins bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore makes the engine use an existing rule store. Built-in templates
// are still added to it unless WithoutBuiltins is also given.
func WithStore(s *Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithoutBuiltins starts the engine without the built-in rule set.
func WithoutBuiltins() Option {
	return func(e *Engine) {
		e.builtins = false
	}
}

// NewEngine creates an Engine. By default it owns a fresh store seeded
// with BuiltinTemplates.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{builtins: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.store == nil {
		e.store = &Store{index: make(map[string]int)}
	}
	if e.builtins {
		for _, t := range BuiltinTemplates() {
			// Built-ins are static and always valid.
			if err := e.store.Add(t); err != nil {
				panic(err)
			}
		}
	}
	return e
}

// Store returns the engine's rule store.
func (e *Engine) Store() *Store {
	return e.store
}

// Recognize returns the best matching template for ocrText, or false if no
// template scores strictly above its own threshold. Equal scores keep the
// template that appears first in store order.
func (e *Engine) Recognize(ocrText string, inv *Invoice) (*TemplateMatch, bool) {
	canonical := Normalize(ocrText)

	var (
		best      Template
		bestScore float64
		found     bool
	)
	e.store.each(func(t Template) {
		score := Score(canonical, inv, t)
		if score > t.ConfidenceThreshold && score > bestScore {
			best, bestScore, found = t, score, true
		}
	})
	if !found {
		e.logger.Debug("no invoice template matched", "text_length", len(ocrText))
		return nil, false
	}

	match := &TemplateMatch{
		TemplateID:      best.ID,
		TemplateName:    best.Name,
		Confidence:      bestScore,
		MatchedPatterns: MatchedPatterns(canonical, best),
	}
	e.logger.Debug("invoice template matched",
		"template_id", match.TemplateID,
		"confidence", match.Confidence,
		"matched_patterns", len(match.MatchedPatterns),
	)
	return match, true
}

// Explain returns the score breakdown of every template in store order.
func (e *Engine) Explain(ocrText string, inv *Invoice) []ScoreBreakdown {
	canonical := Normalize(ocrText)
	var out []ScoreBreakdown
	e.store.each(func(t Template) {
		out = append(out, breakdown(canonical, inv, t))
	})
	return out
}

// Categorize derives a category for an invoice. A match whose template is
// still registered yields that template's category; otherwise vendor-name
// keywords decide, falling back to DefaultCategory.
func (e *Engine) Categorize(match *TemplateMatch, inv *Invoice) string {
	if match != nil {
		if t, ok := e.store.Get(match.TemplateID); ok {
			return t.Category
		}
	}
	return categorizeVendor(inv)
}

// Template returns the template with the given ID.
func (e *Engine) Template(id string) (Template, bool) {
	return e.store.Get(id)
}

// Templates returns every template in store order.
func (e *Engine) Templates() []Template {
	return e.store.All()
}

// TemplatesByCategory returns the templates in the given category.
func (e *Engine) TemplatesByCategory(category string) []Template {
	return e.store.ByCategory(category)
}

// AddTemplate registers or replaces a template.
func (e *Engine) AddTemplate(t Template) error {
	_, err := e.PutTemplate(t)
	return err
}

// PutTemplate registers or replaces a template and reports whether it
// replaced an existing one.
func (e *Engine) PutTemplate(t Template) (bool, error) {
	replaced, err := e.store.Put(t)
	if err != nil {
		e.logger.Warn("rejected invoice template", "template_id", t.ID, "error", err)
		return false, err
	}
	e.logger.Info("registered invoice template", "template_id", t.ID, "category", t.Category, "replaced", replaced)
	return replaced, nil
}

// RemoveTemplate removes a template and reports whether it existed.
func (e *Engine) RemoveTemplate(id string) bool {
	removed := e.store.Remove(id)
	if removed {
		e.logger.Info("removed invoice template", "template_id", id)
	}
	return removed
}
