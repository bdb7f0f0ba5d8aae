// Package remotes provides the embedded remote schema documents registered
// into the shared registry before the vendor suites run. They satisfy the
// cross-document $refs those suites exercise.
package remotes

import "embed"

// FS contains the embedded remote schema documents.
//
//go:embed *.json
var FS embed.FS

// Ordered lists the documents in registration order.
var Ordered = []string{
	"name.json",
	"integer.json",
}
