package driver

// Suite describes one top-level fixture corpus.
type Suite struct {
	Name string // identifier prefix used by the exception tables
	Dir  string // directory under the corpus root
	Sub  string // initial relative directory within Dir ("" for most suites)

	// Dialect is the canonical dialect URI injected as the default for
	// schemas that omit $schema. Vendor corpora have none.
	Dialect string

	// LegacyFormats marks suites for the deprecated draft that still uses
	// the old format keyword names.
	LegacyFormats bool
}

// dialectURIs is the draft metadata table: the five known draft suites and
// their canonical dialect identifiers. Vendor "extra" corpora are absent on
// purpose; they specify their own dialect per schema or rely on the engine
// default.
var dialectURIs = map[string]string{
	"draft3":       "http://json-schema.org/draft-03/schema#",
	"draft4":       "http://json-schema.org/draft-04/schema#",
	"draft6":       "http://json-schema.org/draft-06/schema#",
	"draft7":       "http://json-schema.org/draft-07/schema#",
	"draft2019-09": "https://json-schema.org/draft/2019-09/schema",
}

// legacyDraft is the deprecated draft whose suites need the legacy format
// names registered.
const legacyDraft = "draft3"

// DialectFor returns the default dialect URI for a suite name, or "" when the
// suite has no default dialect.
func DialectFor(name string) string {
	return dialectURIs[name]
}

// Sequence returns the fixed suite execution order: the five draft suites in
// version order with draft3 deliberately after draft7 (matching its
// deprecated status), then the vendor extra-tests corpus, then the ajv
// sub-corpora.
func Sequence() []Suite {
	roots := []struct {
		name, dir, sub string
	}{
		{"draft4", "draft4", ""},
		{"draft6", "draft6", ""},
		{"draft7", "draft7", ""},
		{"draft3", "draft3", ""},
		{"draft2019-09", "draft2019-09", ""},
		{"extra-tests", "extra-tests", ""},
		{"ajv", "ajv", "issues"},
		{"ajv", "ajv", "rules"},
		{"ajv", "ajv", "schemas"},
		{"ajv", "ajv", "extras"},
	}

	suites := make([]Suite, 0, len(roots))
	for _, r := range roots {
		suites = append(suites, Suite{
			Name:          r.name,
			Dir:           r.dir,
			Sub:           r.sub,
			Dialect:       DialectFor(r.name),
			LegacyFormats: r.name == legacyDraft,
		})
	}
	return suites
}
