// Package host is the demo host runtime: it takes a mount point, an
// effect's catalog metadata, and its loaded module, and produces a running
// instance behind a single-operation teardown handle.
//
// The host knows nothing about a module's internals. It selects a hosting
// protocol from a static table, searches the module's exports for a
// constructible candidate, drives the candidate through a fixed lifecycle,
// wires input routing, and guarantees that every resource acquired along
// the way is released on Destroy, whichever path succeeded or failed.
package host

import "github.com/go-vivid/vivid/pkg/catalog"

// Protocol identifies how a module expects to be hosted.
type Protocol int

const (
	// SceneGraph hosts the module inside a shared renderer: the host owns
	// the surface and the module attaches nodes under a mount target.
	SceneGraph Protocol = iota
	// SelfContext lets the module create and own its raw rendering
	// surface and frame loop; the host supplies only a scheduler and a
	// mount target.
	SelfContext
)

func (p Protocol) String() string {
	if p == SelfContext {
		return "self-context"
	}
	return "scene-graph"
}

// ProtocolTable is the externally supplied, fixed list of effect ids that
// use the self-context protocol. Everything else defaults to scene-graph.
// Selection is a static lookup: the module itself is never probed, and a
// mis-registered id is a configuration defect that surfaces later as an
// instantiation failure.
type ProtocolTable struct {
	selfContext map[string]struct{}
}

// NewProtocolTable builds a table from the self-context id list.
func NewProtocolTable(selfContextIDs ...string) ProtocolTable {
	t := ProtocolTable{selfContext: make(map[string]struct{}, len(selfContextIDs))}
	for _, id := range selfContextIDs {
		t.selfContext[id] = struct{}{}
	}
	return t
}

// TableFromCatalog builds the protocol table a catalog declares.
func TableFromCatalog(c *catalog.Catalog) ProtocolTable {
	return NewProtocolTable(c.SelfContext...)
}

// Protocol returns the hosting protocol for an effect id.
func (t ProtocolTable) Protocol(id string) Protocol {
	if _, ok := t.selfContext[id]; ok {
		return SelfContext
	}
	return SceneGraph
}
