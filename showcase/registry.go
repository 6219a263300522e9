// Package showcase ships the built-in demo effects and the catalog that
// describes them. The three effects deliberately span the export shapes
// found in the wild: a default-export constructor, a named-export-only
// module, and a namespace default export, so the host's instantiation
// fallback is exercised end to end.
package showcase

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-vivid/vivid/pkg/catalog"
	"github.com/go-vivid/vivid/pkg/effects"
	vviderr "github.com/go-vivid/vivid/pkg/errors"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	catalogOnce sync.Once
	cat         *catalog.Catalog
	catErr      error
)

// Catalog returns the built-in effect catalog. The embedded YAML is parsed
// once; a parse failure here is a packaging bug and repeats on every call.
func Catalog() (*catalog.Catalog, error) {
	catalogOnce.Do(func() {
		cat, catErr = catalog.Parse(catalogYAML)
	})
	return cat, catErr
}

// modules maps catalog ids to their export shapes.
var modules = map[string]effects.Module{
	"particle-field": {Default: NewParticleField},
	"gradient-wash":  {Named: map[string]any{"GradientWash": NewGradientWash}},
	"plasma":         {Default: effects.Namespace{"Plasma": NewPlasma}},
}

// LoadModule resolves a catalog id to its effect module. Unknown ids fail
// with a LoadError, the same way a missing asset would.
func LoadModule(id string) (effects.Module, error) {
	mod, ok := modules[id]
	if !ok {
		return effects.Module{}, &vviderr.LoadError{EffectID: id, Err: fmt.Errorf("no built-in module")}
	}
	return mod, nil
}
