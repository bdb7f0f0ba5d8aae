// Package schema provides JSON schema validation for driver configuration files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	schemafs "github.com/streamich/schemasafe/schema"
)

var (
	exceptionsSchema *jsonschema.Schema
	compileOnce      sync.Once
	compileErr       error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		data, err := schemafs.FS.ReadFile("exceptions.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read exceptions schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal exceptions schema: %w", err)
			return
		}

		if err := compiler.AddResource("exceptions.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add exceptions schema resource: %w", err)
			return
		}

		exceptionsSchema, err = compiler.Compile("exceptions.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile exceptions schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateExceptions validates YAML exception-list data against the embedded
// exceptions schema. The document is round-tripped through JSON so the
// validator sees canonical JSON values regardless of YAML typing.
func ValidateExceptions(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		return nil
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode exceptions document: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("decode exceptions document: %w", err)
	}

	if err := exceptionsSchema.Validate(v); err != nil {
		return fmt.Errorf("exceptions validation failed: %w", err)
	}

	return nil
}
