package schemasafe_test

import (
	"testing"

	"github.com/streamich/schemasafe/internal/errors"
	"github.com/streamich/schemasafe/pkg/schemasafe"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", schemasafe.ExitSuccess, 0},
		{"ExitTestFailure", schemasafe.ExitTestFailure, 1},
		{"ExitConfigError", schemasafe.ExitConfigError, 2},
		{"ExitCorpusError", schemasafe.ExitCorpusError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("schemasafe.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency verifies that public exit code constants match
// the internal errors package constants. This prevents drift between
// the public API and internal implementation.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", schemasafe.ExitSuccess, errors.ExitSuccess},
		{"TestFailure", schemasafe.ExitTestFailure, errors.ExitTestFailure},
		{"ConfigError", schemasafe.ExitConfigError, errors.ExitConfigError},
		{"CorpusError", schemasafe.ExitCorpusError, errors.ExitCorpusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: schemasafe constant = %d, errors constant = %d",
					tt.public, tt.internal)
			}
		})
	}
}
