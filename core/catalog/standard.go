package catalog

import (
	_ "embed"

	"github.com/opal-lang/tutti/core/invariant"
)

//go:embed standard.yaml
var standardDocument []byte

// Standard returns the built-in symphony orchestra catalog, used when the
// host configures no catalog of its own.
func Standard() *Catalog {
	c, err := Parse(standardDocument)
	invariant.ExpectNoError(err, "parsing the built-in catalog")
	return c
}
