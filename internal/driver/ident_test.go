package driver

import "testing"

func TestTableResolve_BareFormMatchesEverySuite(t *testing.T) {
	table := NewTable([]string{"ref.json/escaped pointer ref"})

	for _, suite := range []string{"draft7", "draft6", "draft4", "draft3"} {
		if !table.Resolve(suite, "ref.json/escaped pointer ref") {
			t.Errorf("bare entry did not match under suite %s", suite)
		}
	}
}

func TestTableResolve_PrefixedFormIsSuiteScoped(t *testing.T) {
	table := NewTable([]string{"draft2019-09/unevaluatedProperties.json/nested unevaluated"})

	if !table.Resolve("draft2019-09", "unevaluatedProperties.json/nested unevaluated") {
		t.Error("prefixed entry did not match under its own suite")
	}
	if table.Resolve("draft7", "unevaluatedProperties.json/nested unevaluated") {
		t.Error("prefixed entry matched under a different suite")
	}
}

func TestTableResolve_BareTableEntryNotTreatedAsSuiteForm(t *testing.T) {
	// An identifier that happens to equal a suite-prefixed entry resolves via
	// exact match, but the reverse direction must not invent prefixes.
	table := NewTable([]string{"enum.json"})

	if !table.Resolve("draft3", "enum.json") {
		t.Error("exact match failed")
	}
	if table.Resolve("draft3", "draft3/enum.json") {
		t.Error("double-prefixed identifier should not match")
	}
}

func TestTableResolve_Miss(t *testing.T) {
	table := NewTable([]string{"type.json/integer type"})

	if table.Resolve("draft7", "type.json") {
		t.Error("file-level identifier matched a block-level entry")
	}
	if table.Resolve("draft7", "type.json/integer type/extra") {
		t.Error("case-level identifier matched a block-level entry")
	}
}

func TestSkipsTablesAreIndependent(t *testing.T) {
	skips := NewSkips(
		[]string{"optional/bignum.json"},
		[]string{"ref.json/escaped pointer ref"},
	)

	if !skips.Unsupported("draft4", "optional/bignum.json") {
		t.Error("unsupported entry missing")
	}
	if skips.Unsupported("draft4", "ref.json/escaped pointer ref") {
		t.Error("relaxed entry leaked into unsupported table")
	}
	if !skips.RequiresRelaxed("draft4", "ref.json/escaped pointer ref") {
		t.Error("relaxed entry missing")
	}
	if skips.RequiresRelaxed("draft4", "optional/bignum.json") {
		t.Error("unsupported entry leaked into relaxed table")
	}
}

func TestExtend(t *testing.T) {
	if got := extend("", "type.json"); got != "type.json" {
		t.Errorf("extend root = %q", got)
	}
	if got := extend("optional", "format.json"); got != "optional/format.json" {
		t.Errorf("extend nested = %q", got)
	}
}
