package driver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	conferrors "github.com/streamich/schemasafe/internal/errors"
)

// walk recursively visits one suite directory. Each .json entry becomes one
// executed test file; every other directory entry is recursed into. The
// unsupported table is consulted before any entry is read, so a skipped
// branch causes no file-system access beyond the directory listing itself.
func (r *Runner) walk(suite Suite, dir, rel string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return conferrors.At(conferrors.Structuralf("read suite directory: %v", err), suite.Name, rel)
	}

	for _, entry := range entries {
		name := entry.Name()
		id := extend(rel, name)
		if r.skips.Unsupported(suite.Name, id) {
			r.reporter.Skipped(suite.Name, id)
			continue
		}

		switch {
		case strings.HasSuffix(name, ".json"):
			if err := r.execFile(suite, filepath.Join(dir, name), id); err != nil {
				return err
			}
		case entry.IsDir():
			if err := r.walk(suite, filepath.Join(dir, name), id); err != nil {
				return err
			}
		default:
			return conferrors.At(
				conferrors.Structuralf("unexpected entry %q: not a fixture file or directory", name),
				suite.Name, id)
		}
	}
	return nil
}

// execFile loads and decodes one fixture file and hands it to the executor.
func (r *Runner) execFile(suite Suite, path, fileID string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return conferrors.At(conferrors.Structuralf("read fixture: %v", err), suite.Name, fileID)
	}

	var tf TestFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return conferrors.At(conferrors.Structuralf("decode fixture: %v", err), suite.Name, fileID)
	}

	r.exec.ExecFile(suite, fileID, tf)
	return nil
}

// suiteDir returns the on-disk directory a suite walk starts from.
func (r *Runner) suiteDir(suite Suite) string {
	if suite.Sub == "" {
		return filepath.Join(r.root, suite.Dir)
	}
	return filepath.Join(r.root, suite.Dir, suite.Sub)
}
