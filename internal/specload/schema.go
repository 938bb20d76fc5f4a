// Package specload validates and decodes a translation-unit document — the
// JSON-encoded AST a front end hands to ramc — grounded on the teacher's
// internal/cli.LoadSpecs: a CUE schema does structural validation before
// any Go-level decoding is attempted, so a malformed document fails with a
// CUE position rather than a confusing decode panic.
package specload

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

// ValidationError reports a structural defect in a translation-unit
// document, with a CUE source position when one is available.
type ValidationError struct {
	Message string
	Pos     string
}

func (e *ValidationError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Validate checks data against the translation-unit schema.
func Validate(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return fmt.Errorf("specload: internal schema error: %w", schema.Err())
	}

	doc := ctx.CompileBytes(data, cue.Filename("input.json"))
	if doc.Err() != nil {
		return &ValidationError{Message: doc.Err().Error()}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.All()); err != nil {
		errs := err.Error()
		return &ValidationError{Message: errs}
	}
	return nil
}
