// Package document persists styles documents.
//
// A document maps entity ids (the host's element ids) to their
// LocalStyles. Documents are stored as TOML, JSON or YAML, chosen by file
// extension.
package document

import (
	"sort"

	"github.com/dshills/stylebag/internal/responsive"
)

// Document is the persisted form of the styles of many entities.
type Document struct {
	Entities map[string]*responsive.LocalStyles `json:"entities" toml:"entities" yaml:"entities"`
}

// New returns an empty document.
func New() *Document {
	return &Document{Entities: make(map[string]*responsive.LocalStyles)}
}

// Entity returns the styles of id, creating an empty entry if absent.
func (d *Document) Entity(id string) *responsive.LocalStyles {
	if d.Entities == nil {
		d.Entities = make(map[string]*responsive.LocalStyles)
	}
	ls, ok := d.Entities[id]
	if !ok || ls == nil {
		ls = &responsive.LocalStyles{}
		d.Entities[id] = ls
	}
	return ls
}

// Lookup returns the styles of id without creating them.
func (d *Document) Lookup(id string) (*responsive.LocalStyles, bool) {
	ls, ok := d.Entities[id]
	return ls, ok && ls != nil
}

// IDs returns the entity ids in sorted order.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.Entities))
	for id := range d.Entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Prune drops entities whose bag holds nothing but its key.
func (d *Document) Prune() int {
	removed := 0
	for id, ls := range d.Entities {
		if ls == nil || len(ls.Instance) == 0 || (len(ls.Instance) == 1 && ls.Instance.Key() != "") {
			delete(d.Entities, id)
			removed++
		}
	}
	return removed
}

// Optimize collapses redundant breakpoint entries in every entity and
// returns the changed plugin paths per entity id.
func (d *Document) Optimize() map[string][]string {
	changed := make(map[string][]string)
	for id, ls := range d.Entities {
		if ls == nil || ls.Instance == nil {
			continue
		}
		if paths := responsive.Optimize(ls.Instance); len(paths) > 0 {
			changed[id] = paths
		}
	}
	return changed
}

// Bags returns every entity bag keyed by entity id. The bags are shared
// with the document.
func (d *Document) Bags() map[string]map[string]any {
	out := make(map[string]map[string]any, len(d.Entities))
	for id, ls := range d.Entities {
		if ls != nil && ls.Instance != nil {
			out[id] = ls.Instance
		}
	}
	return out
}
