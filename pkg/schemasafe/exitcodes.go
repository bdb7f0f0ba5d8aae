// Package schemasafe provides public constants for external tools integrating
// with the conformance driver.
package schemasafe

// Exit codes returned by the schemasafe-conformance CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates every executed case passed.
	ExitSuccess = 0

	// ExitTestFailure indicates one or more conformance cases failed.
	ExitTestFailure = 1

	// ExitConfigError indicates a configuration error (bad flag, malformed
	// exceptions file).
	ExitConfigError = 2

	// ExitCorpusError indicates a corpus structure error (missing suite root,
	// unreadable or malformed fixture, stray directory entry).
	ExitCorpusError = 3
)
