// Package catalog loads and validates effect metadata: the stable id, the
// ordered export-name candidates, the optional lifecycle descriptor, and
// the static table of ids that use the self-context hosting protocol.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-vivid/vivid/pkg/effects"
)

// EffectMetadata identifies one effect module. Records are defined at
// catalog build time and read-only afterwards.
type EffectMetadata struct {
	// ID is the stable effect identifier.
	ID string `yaml:"id"`
	// Title is the human-readable name shown by tooling.
	Title string `yaml:"title"`
	// Version is the effect's semantic version, with or without the
	// leading "v".
	Version string `yaml:"version"`
	// Components is the ordered list of export names the module might
	// expose. Instantiation tries them in this order.
	Components []string `yaml:"components"`
	// Lifecycle optionally declares setup/init/start requirements.
	Lifecycle *effects.Descriptor `yaml:"lifecycle"`
}

// Catalog is the parsed catalog file: the effect entries plus the static
// protocol table.
type Catalog struct {
	Effects []EffectMetadata `yaml:"effects"`
	// SelfContext lists the effect ids that host their own rendering
	// surface. Every other id uses the scene-graph protocol.
	SelfContext []string `yaml:"selfContext"`
}

// Load reads and validates a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML. Unknown fields are rejected so
// a typo in a lifecycle block fails loudly instead of silently changing
// mount behavior.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks entry ids, versions, and the protocol table.
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Effects))
	for i := range c.Effects {
		e := &c.Effects[i]
		if e.ID == "" {
			return fmt.Errorf("catalog: entry %d has no id", i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("catalog: duplicate effect id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Version != "" && !semver.IsValid(canonicalVersion(e.Version)) {
			return fmt.Errorf("catalog: effect %q has invalid version %q", e.ID, e.Version)
		}
		if len(e.Components) == 0 {
			return fmt.Errorf("catalog: effect %q lists no component candidates", e.ID)
		}
	}
	for _, id := range c.SelfContext {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("catalog: protocol table names unknown effect id %q", id)
		}
	}
	return nil
}

// Get returns the metadata for an effect id.
func (c *Catalog) Get(id string) (EffectMetadata, bool) {
	for _, e := range c.Effects {
		if e.ID == id {
			return e, true
		}
	}
	return EffectMetadata{}, false
}

// IDs returns all effect ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Effects))
	for _, e := range c.Effects {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

// UsesSelfContext reports whether an id is in the self-context protocol
// table. This is a static lookup: no heuristics, no probing of the module.
func (c *Catalog) UsesSelfContext(id string) bool {
	for _, s := range c.SelfContext {
		if s == id {
			return true
		}
	}
	return false
}

// canonicalVersion normalizes a version string to the "vMAJOR.MINOR.PATCH"
// form x/mod/semver expects.
func canonicalVersion(v string) string {
	if v == "" || v[0] == 'v' {
		return v
	}
	return "v" + v
}
