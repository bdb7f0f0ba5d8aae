package output

import (
	"bytes"
	"strings"
	"testing"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := &Writer{
		out:   stdout,
		err:   stderr,
		color: false, // Disable color for predictable test output
		quiet: false,
	}
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil {
		t.Error("out writer is nil")
	}
	if w.err == nil {
		t.Error("err writer is nil")
	}
}

func TestWriter_SetQuiet(t *testing.T) {
	w, _, _ := newTestWriter()

	w.SetQuiet(true)
	if !w.quiet {
		t.Error("SetQuiet(true) did not set quiet")
	}

	w.SetQuiet(false)
	if w.quiet {
		t.Error("SetQuiet(false) did not unset quiet")
	}
}

func TestWriter_Println(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Println("ran %d cases", 12)
	if got := stdout.String(); got != "ran 12 cases\n" {
		t.Errorf("stdout = %q, want %q", got, "ran 12 cases\n")
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr not empty: %q", stderr.String())
	}
}

func TestWriter_Info_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.SetQuiet(true)

	w.Info("suite draft4")
	if stdout.Len() != 0 {
		t.Errorf("quiet Info produced output: %q", stdout.String())
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorPrefix("cannot load %s", "exceptions.yaml")
	want := "error: cannot load exceptions.yaml\n"
	if got := stderr.String(); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestWriter_Failure(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.Failure("%d cases failed", 3)
	if got := stderr.String(); got != "3 cases failed\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestWriter_Section(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Section("Draft7")
	if !strings.Contains(stdout.String(), "=== Draft7 ===") {
		t.Errorf("section output = %q", stdout.String())
	}
}

func TestWriter_Section_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.SetQuiet(true)

	w.Section("Draft7")
	if stdout.Len() != 0 {
		t.Errorf("quiet Section produced output: %q", stdout.String())
	}
}

func TestWriter_ColorSuccess(t *testing.T) {
	stdout := &bytes.Buffer{}
	w := &Writer{out: stdout, err: &bytes.Buffer{}, color: true}

	w.Success("ok")
	if !strings.Contains(stdout.String(), "\033[32m") {
		t.Errorf("colored success missing escape code: %q", stdout.String())
	}
}
