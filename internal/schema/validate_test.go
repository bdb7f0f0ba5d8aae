package schema

import (
	"strings"
	"testing"
)

func TestValidateExceptionsAccepts(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"both lists": `
unsupported:
  - draft4/optional/bignum.json
relaxed:
  - ref.json/escaped pointer ref
`,
		"one list":   "unsupported:\n  - a.json\n",
		"empty file": "",
		"empty lists": `
unsupported: []
relaxed: []
`,
	} {
		t.Run(name, func(t *testing.T) {
			if err := ValidateExceptions([]byte(doc)); err != nil {
				t.Errorf("rejected valid document: %v", err)
			}
		})
	}
}

func TestValidateExceptionsRejects(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"unknown key":      "unknown:\n  - a.json\n",
		"non-list value":   "unsupported: a.json\n",
		"non-string entry": "unsupported:\n  - 42\n",
		"empty entry":      "unsupported:\n  - \"\"\n",
		"leading slash":    "unsupported:\n  - /a.json\n",
		"trailing slash":   "unsupported:\n  - a.json/\n",
		"duplicate entry":  "unsupported:\n  - a.json\n  - a.json\n",
		"root not object":  "- a.json\n",
	} {
		t.Run(name, func(t *testing.T) {
			if err := ValidateExceptions([]byte(doc)); err == nil {
				t.Error("accepted invalid document")
			}
		})
	}
}

func TestValidateExceptionsRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	err := ValidateExceptions([]byte("unsupported: [unclosed"))
	if err == nil || !strings.Contains(err.Error(), "invalid YAML") {
		t.Errorf("err = %v, want YAML parse failure", err)
	}
}
