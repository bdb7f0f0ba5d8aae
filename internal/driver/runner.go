package driver

import (
	"bytes"
	"errors"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/streamich/schemasafe/internal/engine"
	conferrors "github.com/streamich/schemasafe/internal/errors"
	"github.com/streamich/schemasafe/remotes"
)

// Runner orchestrates a full conformance run: it registers the shared schema
// registry once at startup, then walks every suite root in the fixed sequence
// and feeds loaded test files into the case executor.
type Runner struct {
	root     string
	skips    *Skips
	reporter Reporter
	exec     *Executor
	only     string
}

// New creates a Runner for the corpus rooted at root. The shared registry of
// remote schema documents is loaded up front; it is read-only for the rest of
// the run.
func New(root string, skips *Skips, reporter Reporter) (*Runner, error) {
	registry, err := remoteRegistry()
	if err != nil {
		return nil, err
	}
	return &Runner{
		root:     root,
		skips:    skips,
		reporter: reporter,
		exec:     NewExecutor(skips, reporter, registry),
	}, nil
}

// SetSuiteFilter restricts the run to suite roots with the given name while
// preserving the execution order. An empty name runs everything.
func (r *Runner) SetSuiteFilter(name string) {
	r.only = name
}

// Run walks every suite in sequence. Per-case failures are recorded through
// the reporter and never abort the run; a structural error aborts its suite
// branch but the remaining suites still execute.
func (r *Runner) Run() error {
	var errs []error
	for _, suite := range Sequence() {
		if r.only != "" && suite.Name != r.only {
			continue
		}
		if err := r.runSuite(suite); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) runSuite(suite Suite) error {
	dir := r.suiteDir(suite)
	if _, err := os.Stat(dir); err != nil {
		return conferrors.At(conferrors.Structuralf("suite root missing: %v", err), suite.Name, suite.Sub)
	}
	return r.walk(suite, dir, suite.Sub)
}

// remoteRegistry loads the fixed ordered sequence of out-of-band remote
// schema documents. Each document names itself through $id.
func remoteRegistry() ([]engine.Resource, error) {
	resources := make([]engine.Resource, 0, len(remotes.Ordered))
	for _, name := range remotes.Ordered {
		data, err := remotes.FS.ReadFile(name)
		if err != nil {
			return nil, conferrors.Configf("read remote document %s: %v", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, conferrors.Configf("decode remote document %s: %v", name, err)
		}
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, conferrors.Configf("remote document %s: root is not an object", name)
		}
		id, ok := obj["$id"].(string)
		if !ok || id == "" {
			return nil, conferrors.Configf("remote document %s: missing $id", name)
		}
		resources = append(resources, engine.Resource{ID: id, Document: doc})
	}
	return resources, nil
}

// Registry exposes the loaded remote documents, mainly for tests that build
// executors directly.
func (r *Runner) Registry() []engine.Resource {
	return r.exec.registry
}
