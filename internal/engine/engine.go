// Package engine wraps the jsonschema library behind the two entry points the
// conformance driver exercises: a boolean validator and a parse-and-validate
// function. Both are obtained from factories taking a (schema, options) pair;
// construction fails up front when the schema is rejected, never at call time.
package engine

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	conferrors "github.com/streamich/schemasafe/internal/errors"
)

// Mode selects how strictly the engine treats schema documents.
type Mode string

const (
	// ModeDefault rejects schemas that fail the strict lint pass.
	ModeDefault Mode = "default"
	// ModeRelaxed tolerates schema constructs the default mode rejects
	// outright, such as keywords outside the dialect vocabulary.
	ModeRelaxed Mode = "relaxed"
)

// Resource is one pre-registered schema document in the shared registry.
type Resource struct {
	ID       string
	Document any
}

// Options configures a validator or parser construction.
type Options struct {
	Schemas       []Resource // shared registry, registered before the schema under test
	Mode          Mode       // "" is treated as ModeDefault
	SchemaDefault string     // dialect URI applied when a schema omits $schema
	ExtraFormats  bool       // accept and assert the legacy draft-3 format names
	IncludeErrors bool       // carry error details in ParseResult
	AllErrors     bool       // collect every leaf error instead of the first
}

// Issue is one validation error surfaced by the parse entry point.
type Issue struct {
	InstanceLocation string
	Message          string
}

// ParseResult is the outcome of the parse-and-validate entry point.
type ParseResult struct {
	Valid  bool
	Errors []Issue
}

// ValidateFunc checks already-decoded data against the constructed schema.
type ValidateFunc func(data any) bool

// ParseFunc decodes JSON text and validates it in one step. Its decode path
// is independent from the data the validator entry point receives.
type ParseFunc func(jsonText string) ParseResult

// printer renders error kinds; the library localizes messages through
// x/text message printers.
var printer = message.NewPrinter(language.English)

// Validator constructs the boolean-result entry point for a schema document
// or a reference string naming a registered resource.
func Validator(schema any, opts Options) (ValidateFunc, error) {
	sch, err := compile(schema, opts)
	if err != nil {
		return nil, err
	}
	return func(data any) bool {
		return sch.Validate(data) == nil
	}, nil
}

// Parser constructs the parse-and-validate entry point for a schema document
// or a reference string naming a registered resource.
func Parser(schema any, opts Options) (ParseFunc, error) {
	sch, err := compile(schema, opts)
	if err != nil {
		return nil, err
	}
	return func(jsonText string) ParseResult {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(jsonText))
		if err != nil {
			res := ParseResult{Valid: false}
			if opts.IncludeErrors {
				res.Errors = []Issue{{Message: "invalid JSON: " + err.Error()}}
			}
			return res
		}
		err = sch.Validate(doc)
		if err == nil {
			return ParseResult{Valid: true}
		}
		res := ParseResult{Valid: false}
		if opts.IncludeErrors {
			if verr, ok := err.(*jsonschema.ValidationError); ok {
				res.Errors = collectIssues(verr, opts.AllErrors)
			} else {
				res.Errors = []Issue{{Message: err.Error()}}
			}
		}
		return res
	}, nil
}

// compile builds the underlying schema for a (schema, options) pair. The
// strict lint runs before any compiler work so that rejection happens even
// for schemas the library itself would tolerate.
func compile(schema any, opts Options) (*jsonschema.Schema, error) {
	if opts.Mode != ModeRelaxed {
		if err := lintSchema(schema, opts); err != nil {
			return nil, err
		}
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	if draft := draftFor(opts.SchemaDefault); draft != nil {
		compiler.DefaultDraft(draft)
	}
	if opts.ExtraFormats {
		registerLegacyFormats(compiler)
	}

	for _, r := range opts.Schemas {
		if err := compiler.AddResource(r.ID, r.Document); err != nil {
			return nil, conferrors.Constructionf("register resource %s: %v", r.ID, err)
		}
	}

	url := "schema.json"
	if ref, ok := schema.(string); ok {
		url = ref
	} else if err := compiler.AddResource(url, schema); err != nil {
		return nil, conferrors.Constructionf("add schema resource: %v", err)
	}

	sch, err := compiler.Compile(url)
	if err != nil {
		return nil, conferrors.Constructionf("compile schema: %v", err)
	}
	return sch, nil
}

// draftFor maps a dialect URI to the library draft used as the default for
// schemas without an explicit $schema. The deprecated draft-03 dialect has no
// library counterpart and is mapped to the closest supported draft.
func draftFor(dialect string) *jsonschema.Draft {
	switch dialect {
	case "http://json-schema.org/draft-03/schema#",
		"http://json-schema.org/draft-04/schema#":
		return jsonschema.Draft4
	case "http://json-schema.org/draft-06/schema#":
		return jsonschema.Draft6
	case "http://json-schema.org/draft-07/schema#":
		return jsonschema.Draft7
	case "https://json-schema.org/draft/2019-09/schema":
		return jsonschema.Draft2019
	case "https://json-schema.org/draft/2020-12/schema":
		return jsonschema.Draft2020
	default:
		return nil
	}
}

// collectIssues flattens a validation error tree into leaf issues. With
// allErrors unset only the first leaf is reported.
func collectIssues(verr *jsonschema.ValidationError, allErrors bool) []Issue {
	var leaves []*jsonschema.ValidationError
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			leaves = append(leaves, e)
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)

	if !allErrors && len(leaves) > 1 {
		leaves = leaves[:1]
	}

	issues := make([]Issue, 0, len(leaves))
	for _, leaf := range leaves {
		issues = append(issues, Issue{
			InstanceLocation: "/" + strings.Join(leaf.InstanceLocation, "/"),
			Message:          leaf.ErrorKind.LocalizedString(printer),
		})
	}
	return issues
}
