// Package driver implements the test-selection and execution protocol of the
// conformance driver: identifier construction, skip-list resolution, suite
// walking and the engine configuration matrix.
package driver

// Table is a set of test identifier strings. Entries are either bare relative
// identifiers (they apply to every suite containing that path) or prefixed
// with a suite name (they apply within that suite only).
type Table map[string]struct{}

// NewTable builds a Table from a list of identifiers.
func NewTable(ids []string) Table {
	t := make(Table, len(ids))
	for _, id := range ids {
		t[id] = struct{}{}
	}
	return t
}

// Resolve reports whether the identifier is listed, checking the bare form
// first and the suite-prefixed form second. First match wins; no wildcard or
// pattern matching is performed.
func (t Table) Resolve(suite, id string) bool {
	if _, ok := t[id]; ok {
		return true
	}
	_, ok := t[suite+"/"+id]
	return ok
}

// Skips bundles the two exception tables consulted during a run.
type Skips struct {
	unsupported Table
	relaxed     Table
}

// NewSkips builds the exception tables from the two identifier lists.
func NewSkips(unsupported, relaxed []string) *Skips {
	return &Skips{
		unsupported: NewTable(unsupported),
		relaxed:     NewTable(relaxed),
	}
}

// Unsupported reports whether the identifier is excluded entirely. Matching
// at directory or file granularity suppresses everything nested underneath,
// because the walker consults this before descending or loading.
func (s *Skips) Unsupported(suite, id string) bool {
	return s.unsupported.Resolve(suite, id)
}

// RequiresRelaxed reports whether the identifier only passes with the engine
// in relaxed mode.
func (s *Skips) RequiresRelaxed(suite, id string) bool {
	return s.relaxed.Resolve(suite, id)
}

// extend appends one path or description segment to an identifier.
func extend(id, segment string) string {
	if id == "" {
		return segment
	}
	return id + "/" + segment
}
