package driver

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/streamich/schemasafe/internal/engine"
	conferrors "github.com/streamich/schemasafe/internal/errors"
)

// TestFile is one loaded fixture file: an ordered sequence of blocks.
type TestFile []Block

// Block is one named scenario bundling candidate schema forms with a shared
// list of data cases.
type Block struct {
	Description string            `json:"description"`
	Schema      json.RawMessage   `json:"schema"`
	Schemas     []json.RawMessage `json:"schemas"`
	Tests       []Case            `json:"tests"`
}

// Case is one (data, expectedValid) pair.
type Case struct {
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
	Valid       bool            `json:"valid"`
}

// candidates returns the block's candidate schemas in order: the singular
// schema field first, then the schemas sequence.
func (b *Block) candidates() []json.RawMessage {
	var out []json.RawMessage
	if len(b.Schema) > 0 {
		out = append(out, b.Schema)
	}
	return append(out, b.Schemas...)
}

// Executor runs loaded test files through the engine configuration matrix.
// It is stateless across blocks; schemas are never shared between siblings.
type Executor struct {
	skips    *Skips
	reporter Reporter
	registry []engine.Resource
}

// NewExecutor creates an Executor with the given exception tables, result
// collector and shared schema registry.
func NewExecutor(skips *Skips, reporter Reporter, registry []engine.Resource) *Executor {
	return &Executor{
		skips:    skips,
		reporter: reporter,
		registry: registry,
	}
}

// ExecFile runs every non-skipped block of one loaded test file.
func (e *Executor) ExecFile(suite Suite, fileID string, tf TestFile) {
	for i := range tf {
		e.execBlock(suite, fileID, &tf[i])
	}
}

func (e *Executor) execBlock(suite Suite, fileID string, block *Block) {
	blockID := extend(fileID, block.Description)
	if e.skips.Unsupported(suite.Name, blockID) {
		e.reporter.Skipped(suite.Name, blockID)
		return
	}

	mode := engine.ModeDefault
	if e.skips.RequiresRelaxed(suite.Name, blockID) {
		mode = engine.ModeRelaxed
	}

	for idx, raw := range block.candidates() {
		schema, err := decodeCandidate(raw)
		if err != nil {
			e.reporter.Record(Result{
				Suite: suite.Name, ID: blockID, Schema: idx,
				Entry: EntryConstruct,
				Err:   conferrors.Constructionf("decode schema: %v", err),
			})
			continue
		}

		for _, variant := range Variants {
			opts := engine.Options{
				Schemas:       e.registry,
				Mode:          mode,
				SchemaDefault: suite.Dialect,
				ExtraFormats:  suite.LegacyFormats,
				IncludeErrors: variant.IncludeErrors,
				AllErrors:     variant.AllErrors,
			}
			e.execVariant(suite, blockID, block, idx, schema, variant, opts)
		}
	}
}

// execVariant builds one engine handle pair and runs every case through both
// entry points. In relaxed mode it additionally verifies the strict engine
// rejects the schema outright.
func (e *Executor) execVariant(suite Suite, blockID string, block *Block, idx int, schema any, variant Variant, opts engine.Options) {
	validate, err := engine.Validator(schema, opts)
	if err != nil {
		e.reporter.Record(Result{
			Suite: suite.Name, ID: blockID, Schema: idx, Variant: variant,
			Entry: EntryConstruct, Err: err,
		})
		return
	}
	parse, err := engine.Parser(schema, opts)
	if err != nil {
		e.reporter.Record(Result{
			Suite: suite.Name, ID: blockID, Schema: idx, Variant: variant,
			Entry: EntryConstruct, Err: err,
		})
		return
	}

	for ci := range block.Tests {
		c := &block.Tests[ci]
		caseID := extend(blockID, c.Description)
		if e.skips.Unsupported(suite.Name, caseID) {
			e.reporter.Skipped(suite.Name, caseID)
			continue
		}

		data, err := jsonschema.UnmarshalJSON(bytes.NewReader(c.Data))
		if err != nil {
			e.reporter.Record(Result{
				Suite: suite.Name, ID: caseID, Schema: idx, Variant: variant,
				Entry: EntryValidate,
				Err:   conferrors.Assertionf("decode case data: %v", err),
			})
			continue
		}

		e.check(suite, caseID, idx, variant, EntryValidate, validate(data), c.Valid)
		e.check(suite, caseID, idx, variant, EntryParse, parse(string(c.Data)).Valid, c.Valid)
	}

	if opts.Mode == engine.ModeRelaxed {
		strict := opts
		strict.Mode = engine.ModeDefault
		var err error
		if _, strictErr := engine.Validator(schema, strict); strictErr == nil {
			err = conferrors.Assertion("schema classified as relaxed-only was accepted by the strict engine")
		}
		e.reporter.Record(Result{
			Suite: suite.Name, ID: blockID, Schema: idx, Variant: variant,
			Entry: EntryStrictReject, Err: err,
		})
	}
}

// check records one agreement assertion. Both entry points report through
// this single helper so the expected-outcome invariant lives in one place.
func (e *Executor) check(suite Suite, id string, idx int, variant Variant, entry string, got, want bool) {
	var err error
	if got != want {
		err = conferrors.Assertionf("%s returned valid=%v, expected %v", entry, got, want)
	}
	e.reporter.Record(Result{
		Suite: suite.Name, ID: id, Schema: idx, Variant: variant,
		Entry: entry, Err: err,
	})
}

// decodeCandidate decodes one candidate schema. Bare string candidates name a
// registered schema document and are wrapped in a reference indirection.
func decodeCandidate(raw json.RawMessage) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if ref, ok := doc.(string); ok {
		return map[string]any{"$ref": ref}, nil
	}
	return doc, nil
}
