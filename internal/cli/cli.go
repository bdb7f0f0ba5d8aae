// Package cli provides the command-line interface of the conformance driver.
package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/streamich/schemasafe/internal/config"
	"github.com/streamich/schemasafe/internal/driver"
	"github.com/streamich/schemasafe/internal/errors"
	"github.com/streamich/schemasafe/internal/output"
)

// Version is set at build time.
var Version = "dev"

const (
	defaultRoot       = "testdata/suites"
	defaultExceptions = "testdata/exceptions.yaml"
)

// Options holds parsed command-line flags.
type Options struct {
	Root       string
	Exceptions string
	Suite      string
	Quiet      bool
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return run(args, output.New())
}

func run(args []string, w *output.Writer) int {
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			printUsage(w)
			return errors.ExitSuccess
		case "--version", "version":
			w.Println("schemasafe-conformance %s", Version)
			return errors.ExitSuccess
		}
	}

	opts, err := parseFlags(args)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	w.SetQuiet(opts.Quiet)

	exc, err := config.LoadAndValidate(opts.Exceptions)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	summary := &driver.Summary{}
	runner, err := driver.New(opts.Root, driver.NewSkips(exc.Unsupported, exc.Relaxed), summary)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	if opts.Suite != "" {
		runner.SetSuiteFilter(opts.Suite)
	}

	runErr := runner.Run()
	printSummary(w, summary)

	switch {
	case runErr != nil:
		w.ErrorPrefix("%v", runErr)
		return errors.GetExitCode(runErr)
	case summary.Failed > 0:
		return errors.ExitTestFailure
	default:
		return errors.ExitSuccess
	}
}

// parseFlags manually parses flags from arguments. Manual parsing keeps the
// error messages consistent with the rest of the output and allows both
// --flag value and --flag=value spellings.
func parseFlags(args []string) (*Options, error) {
	opts := &Options{Root: defaultRoot, Exceptions: defaultExceptions}

	i := 0
	value := func(name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		i++
		return args[i], nil
	}

	for i < len(args) {
		arg := args[i]
		var err error

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
		case arg == "--root":
			opts.Root, err = value(arg)
		case strings.HasPrefix(arg, "--root="):
			opts.Root = strings.TrimPrefix(arg, "--root=")
		case arg == "--exceptions":
			opts.Exceptions, err = value(arg)
		case strings.HasPrefix(arg, "--exceptions="):
			opts.Exceptions = strings.TrimPrefix(arg, "--exceptions=")
		case arg == "--suite":
			opts.Suite, err = value(arg)
		case strings.HasPrefix(arg, "--suite="):
			opts.Suite = strings.TrimPrefix(arg, "--suite=")
		default:
			return nil, fmt.Errorf("unexpected argument %q\n  run 'schemasafe-conformance --help' for usage", arg)
		}
		if err != nil {
			return nil, err
		}
		i++
	}

	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// validateOptions checks flag values that can be rejected before the run.
func validateOptions(opts *Options) error {
	if opts.Root == "" {
		return fmt.Errorf("--root requires a non-empty value")
	}
	if opts.Exceptions == "" {
		return fmt.Errorf("--exceptions requires a non-empty value")
	}
	if opts.Suite != "" && !knownSuite(opts.Suite) {
		return fmt.Errorf("unknown suite %q\n  valid suites: %s",
			opts.Suite, strings.Join(suiteNames(), ", "))
	}
	return nil
}

func knownSuite(name string) bool {
	for _, s := range driver.Sequence() {
		if s.Name == name {
			return true
		}
	}
	return false
}

func suiteNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range driver.Sequence() {
		if !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	return names
}

var titler = cases.Title(language.English)

// printSummary writes per-suite counts, the failure list and the verdict.
func printSummary(w *output.Writer, s *driver.Summary) {
	w.Section("Results")
	for _, sc := range s.Suites() {
		w.Info("%-14s %5d passed  %3d failed  %3d skipped",
			titler.String(sc.Name), sc.Passed, sc.Failed, sc.Skipped)
	}

	if len(s.Failures) > 0 {
		w.Section("Failures")
		for _, f := range s.Failures {
			w.Failure("%v", f)
			w.Failure("  %v", f.Err)
		}
	}

	w.Println("")
	if s.Failed == 0 {
		w.Success("PASS: %d checks passed, %d skipped", s.Passed, s.SkippedCount)
	} else {
		w.Failure("FAIL: %d of %d checks failed, %d skipped", s.Failed, s.Failed+s.Passed, s.SkippedCount)
	}
}

func printUsage(w *output.Writer) {
	w.Println("schemasafe-conformance - JSON Schema conformance test driver")
	w.Println("")
	w.Println("Usage:")
	w.Println("  schemasafe-conformance [flags]")
	w.Println("")
	w.Println("Flags:")
	w.Println("  --root <dir>         Corpus root directory (default %s)", defaultRoot)
	w.Println("  --exceptions <file>  Exception lists file (default %s)", defaultExceptions)
	w.Println("  --suite <name>       Run a single suite (%s)", strings.Join(suiteNames(), ", "))
	w.Println("  -q, --quiet          Minimal output (failures and verdict only)")
	w.Println("  -h, --help           Show this help")
	w.Println("  --version            Show version")
}
