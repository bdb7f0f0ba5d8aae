package driver

import (
	"fmt"
)

// Variant is one engine configuration combination. Expected outcomes are
// invariant across all three.
type Variant struct {
	IncludeErrors bool
	AllErrors     bool
}

// Variants is the fixed configuration matrix, in execution order.
var Variants = [3]Variant{
	{IncludeErrors: false, AllErrors: false},
	{IncludeErrors: true, AllErrors: false},
	{IncludeErrors: true, AllErrors: true},
}

func (v Variant) String() string {
	return fmt.Sprintf("includeErrors=%v allErrors=%v", v.IncludeErrors, v.AllErrors)
}

// Entry names for the checks a Result can describe.
const (
	EntryValidate     = "validate"      // boolean validator outcome vs expected
	EntryParse        = "parse"         // parse-and-validate outcome vs expected
	EntryConstruct    = "construct"     // engine handle construction
	EntryStrictReject = "strict-reject" // relaxed schemas must fail strict construction
)

// Result is one recorded check. Err nil means the check passed.
type Result struct {
	Suite   string
	ID      string // file/block[/case] path relative to the suite
	Schema  int    // candidate schema index within the block
	Variant Variant
	Entry   string
	Err     error
}

func (r Result) String() string {
	status := "pass"
	if r.Err != nil {
		status = "fail"
	}
	return fmt.Sprintf("%s %s/%s [schema %d, %s, %s]", status, r.Suite, r.ID, r.Schema, r.Variant, r.Entry)
}

// Reporter collects per-check results and skip notices. It is the assertion
// collector the executor reports into; failures never abort the run.
type Reporter interface {
	Record(Result)
	Skipped(suite, id string)
}

// SuiteCount aggregates results for one walked suite root.
type SuiteCount struct {
	Name    string
	Passed  int
	Failed  int
	Skipped int
}

// Summary is the default Reporter: counters plus the list of failures.
type Summary struct {
	Passed       int
	Failed       int
	SkippedCount int

	Failures []Result

	counts map[string]*SuiteCount
	order  []string
}

func (s *Summary) suiteCount(name string) *SuiteCount {
	if s.counts == nil {
		s.counts = make(map[string]*SuiteCount)
	}
	sc, ok := s.counts[name]
	if !ok {
		sc = &SuiteCount{Name: name}
		s.counts[name] = sc
		s.order = append(s.order, name)
	}
	return sc
}

// Record implements Reporter.
func (s *Summary) Record(r Result) {
	sc := s.suiteCount(r.Suite)
	if r.Err != nil {
		s.Failed++
		sc.Failed++
		s.Failures = append(s.Failures, r)
		return
	}
	s.Passed++
	sc.Passed++
}

// Skipped implements Reporter.
func (s *Summary) Skipped(suite, id string) {
	s.SkippedCount++
	s.suiteCount(suite).Skipped++
}

// Suites returns per-suite counts in first-seen order.
func (s *Summary) Suites() []SuiteCount {
	out := make([]SuiteCount, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.counts[name])
	}
	return out
}
