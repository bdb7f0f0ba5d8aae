package engine

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	conferrors "github.com/streamich/schemasafe/internal/errors"
)

// Dialect URIs recognized by the lint pass.
const (
	dialectDraft3 = "http://json-schema.org/draft-03/schema#"
	dialectDraft4 = "http://json-schema.org/draft-04/schema#"
	dialectDraft6 = "http://json-schema.org/draft-06/schema#"
	dialectDraft7 = "http://json-schema.org/draft-07/schema#"
	dialect2019   = "https://json-schema.org/draft/2019-09/schema"
	dialect2020   = "https://json-schema.org/draft/2020-12/schema"
)

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func union(base map[string]bool, words ...string) map[string]bool {
	set := make(map[string]bool, len(base)+len(words))
	for w := range base {
		set[w] = true
	}
	for _, w := range words {
		set[w] = true
	}
	return set
}

func without(base map[string]bool, words ...string) map[string]bool {
	set := make(map[string]bool, len(base))
	for w := range base {
		set[w] = true
	}
	for _, w := range words {
		delete(set, w)
	}
	return set
}

var draft3Keywords = keywordSet(
	"$schema", "id", "$ref", "type", "properties", "patternProperties",
	"additionalProperties", "items", "additionalItems", "required",
	"dependencies", "minimum", "maximum", "exclusiveMinimum",
	"exclusiveMaximum", "minItems", "maxItems", "uniqueItems", "pattern",
	"minLength", "maxLength", "enum", "default", "title", "description",
	"format", "divisibleBy", "disallow", "extends",
)

var draft4Keywords = keywordSet(
	"$schema", "id", "$ref", "definitions", "title", "description",
	"default", "multipleOf", "maximum", "exclusiveMaximum", "minimum",
	"exclusiveMinimum", "maxLength", "minLength", "pattern",
	"additionalItems", "items", "maxItems", "minItems", "uniqueItems",
	"maxProperties", "minProperties", "required", "properties",
	"patternProperties", "additionalProperties", "dependencies", "enum",
	"type", "allOf", "anyOf", "oneOf", "not", "format",
)

var draft6Keywords = union(without(draft4Keywords, "id"),
	"$id", "const", "contains", "propertyNames", "examples",
)

var draft7Keywords = union(draft6Keywords,
	"$comment", "if", "then", "else", "readOnly", "writeOnly",
	"contentMediaType", "contentEncoding",
)

var draft2019Keywords = union(without(draft7Keywords, "dependencies"),
	"$defs", "$anchor", "$recursiveRef", "$recursiveAnchor", "$vocabulary",
	"dependentRequired", "dependentSchemas", "maxContains", "minContains",
	"unevaluatedItems", "unevaluatedProperties", "deprecated",
	"contentSchema",
)

var draft2020Keywords = union(
	without(draft2019Keywords, "additionalItems", "$recursiveRef", "$recursiveAnchor"),
	"prefixItems", "$dynamicRef", "$dynamicAnchor",
)

func vocabularyFor(dialect string) map[string]bool {
	switch dialect {
	case dialectDraft3:
		return draft3Keywords
	case dialectDraft4:
		return draft4Keywords
	case dialectDraft6:
		return draft6Keywords
	case dialectDraft7:
		return draft7Keywords
	case dialect2019:
		return draft2019Keywords
	default:
		return draft2020Keywords
	}
}

// knownFormats are the format names the strict mode accepts across dialects.
var knownFormats = keywordSet(
	"date-time", "date", "time", "duration", "email", "idn-email",
	"hostname", "idn-hostname", "ipv4", "ipv6", "uri", "uri-reference",
	"iri", "iri-reference", "uri-template", "json-pointer",
	"relative-json-pointer", "regex", "uuid",
)

// legacyFormats are the deprecated draft-3 format names, accepted only when
// the extra-formats option is set.
var legacyFormats = keywordSet(
	"ip-address", "host-name", "color", "style", "phone", "utc-millisec",
	"alpha", "alphanumeric",
)

// Subschema positions the lint recurses into. Values are either one schema,
// an array of schemas, or a map of named schemas.
var (
	schemaValueKeywords = keywordSet(
		"additionalProperties", "additionalItems", "contains",
		"propertyNames", "not", "if", "then", "else", "unevaluatedItems",
		"unevaluatedProperties", "contentSchema", "extends", "items",
	)
	schemaArrayKeywords = keywordSet(
		"allOf", "anyOf", "oneOf", "prefixItems", "items", "extends",
	)
	schemaMapKeywords = keywordSet(
		"properties", "patternProperties", "definitions", "$defs",
		"dependentSchemas", "dependencies",
	)
)

// lintSchema rejects schema constructs outside the dialect vocabulary. This
// is the strict-mode gate: schemas that only compile with lint disabled are
// the ones classified as requiring relaxed mode.
func lintSchema(schema any, opts Options) error {
	doc, ok := schema.(map[string]any)
	if !ok {
		// Boolean schemas and reference strings have nothing to lint.
		return nil
	}

	dialect := opts.SchemaDefault
	if declared, ok := doc["$schema"].(string); ok {
		dialect = declared
	}
	vocab := vocabularyFor(dialect)

	formats := knownFormats
	if opts.ExtraFormats {
		formats = union(knownFormats)
		for name := range legacyFormats {
			formats[name] = true
		}
	}

	return lintNode(doc, "#", dialect, vocab, formats)
}

func lintNode(node any, path, dialect string, vocab, formats map[string]bool) error {
	obj, ok := node.(map[string]any)
	if !ok {
		if _, isBool := node.(bool); isBool {
			return nil
		}
		return conferrors.Constructionf("%s: schema must be an object or boolean, got %T", path, node)
	}

	for key, value := range obj {
		if !vocab[key] {
			return conferrors.Constructionf("%s: keyword %q is not part of the dialect vocabulary", path, key)
		}
		if err := lintKeyword(key, value, path+"/"+key, dialect, vocab, formats); err != nil {
			return err
		}
	}
	return nil
}

func lintKeyword(key string, value any, path, dialect string, vocab, formats map[string]bool) error {
	switch key {
	case "enum":
		items, ok := value.([]any)
		if !ok || len(items) == 0 {
			return conferrors.Constructionf("%s: enum must be a non-empty array", path)
		}
	case "required":
		if dialect == dialectDraft3 {
			// draft-3 allows the boolean form inside property subschemas.
			return nil
		}
		items, ok := value.([]any)
		if !ok {
			return conferrors.Constructionf("%s: required must be an array of property names", path)
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return conferrors.Constructionf("%s: required entries must be strings", path)
			}
		}
	case "pattern":
		s, ok := value.(string)
		if !ok {
			return conferrors.Constructionf("%s: pattern must be a string", path)
		}
		if _, err := regexp.Compile(s); err != nil {
			return conferrors.Constructionf("%s: invalid pattern: %v", path, err)
		}
	case "format":
		s, ok := value.(string)
		if !ok {
			return conferrors.Constructionf("%s: format must be a string", path)
		}
		if !formats[s] {
			return conferrors.Constructionf("%s: unknown format %q", path, s)
		}
	}

	// Recurse into subschema positions.
	switch {
	case schemaMapKeywords[key]:
		obj, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		for name, sub := range obj {
			if key == "patternProperties" {
				if _, err := regexp.Compile(name); err != nil {
					return conferrors.Constructionf("%s: invalid property pattern %q: %v", path, name, err)
				}
			}
			if key == "dependencies" {
				// Property dependencies are arrays of names, not schemas.
				if _, isList := sub.([]any); isList {
					continue
				}
			}
			if err := lintNode(sub, path+"/"+name, dialect, vocab, formats); err != nil {
				return err
			}
		}
	case schemaArrayKeywords[key]:
		if items, ok := value.([]any); ok {
			for i, sub := range items {
				if err := lintNode(sub, fmt.Sprintf("%s/%d", path, i), dialect, vocab, formats); err != nil {
					return err
				}
			}
			return nil
		}
		fallthrough
	case schemaValueKeywords[key]:
		if _, isMap := value.(map[string]any); isMap {
			return lintNode(value, path, dialect, vocab, formats)
		}
	}
	return nil
}

// registerLegacyFormats teaches the compiler the deprecated draft-3 format
// names so legacy suites can still assert them.
func registerLegacyFormats(c *jsonschema.Compiler) {
	stringFormat := func(name string, check func(string) bool) *jsonschema.Format {
		return &jsonschema.Format{
			Name: name,
			Validate: func(v any) error {
				s, ok := v.(string)
				if !ok {
					return nil
				}
				if !check(s) {
					return fmt.Errorf("invalid %s: %q", name, s)
				}
				return nil
			},
		}
	}

	c.RegisterFormat(stringFormat("ip-address", func(s string) bool {
		ip := net.ParseIP(s)
		return ip != nil && ip.To4() != nil
	}))
	c.RegisterFormat(stringFormat("host-name", func(s string) bool {
		return hostnameRe.MatchString(s)
	}))
	c.RegisterFormat(stringFormat("alpha", func(s string) bool {
		return alphaRe.MatchString(s)
	}))
	c.RegisterFormat(stringFormat("alphanumeric", func(s string) bool {
		return alnumRe.MatchString(s)
	}))
	c.RegisterFormat(stringFormat("utc-millisec", func(s string) bool {
		return millisecRe.MatchString(strings.TrimSpace(s))
	}))
	// color, style and phone were never validated by draft-3 era engines;
	// they are annotation-only here as well.
	for _, name := range []string{"color", "style", "phone"} {
		c.RegisterFormat(stringFormat(name, func(string) bool { return true }))
	}
}

var (
	hostnameRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	alphaRe    = regexp.MustCompile(`^[a-zA-Z]+$`)
	alnumRe    = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	millisecRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)
