// Package dataset holds the immutable activity tables served by the API and
// the loaders that build them at startup.
package dataset

import (
	"fmt"

	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// ID names a dataset
type ID string

const (
	Edinburgh   ID = "edinburgh"
	JohnMuirWay ID = "john_muir_way"
	Glasgow     ID = "glasgow"
	// All is the concatenation of every region, in Regions order
	All ID = "all"

	// Default is served for unknown dataset names
	Default = Edinburgh
)

// Regions lists the region datasets in concatenation order
var Regions = []ID{Edinburgh, JohnMuirWay, Glasgow}

// IDs lists every dataset, regions first
func IDs() []ID {
	return append(append([]ID{}, Regions...), All)
}

// ParseID maps a name to a known ID
func ParseID(name string) (ID, bool) {
	for _, id := range IDs() {
		if string(id) == name {
			return id, true
		}
	}
	return "", false
}

// Registry maps dataset IDs to read-only tables.
// It is built once and never mutated, so it is safe for concurrent use.
type Registry struct {
	tables map[ID]models.Dataset
}

// NewRegistry builds a registry from the region tables and derives All.
// Every region in Regions must be present.
func NewRegistry(regions map[ID]models.Dataset) (*Registry, error) {
	tables := make(map[ID]models.Dataset, len(Regions)+1)
	size := 0
	for _, id := range Regions {
		ds, ok := regions[id]
		if !ok {
			return nil, fmt.Errorf("missing region dataset %q", id)
		}
		tables[id] = ds
		size += len(ds)
	}

	all := make(models.Dataset, 0, size)
	for _, id := range Regions {
		all = append(all, tables[id]...)
	}
	tables[All] = all

	return &Registry{tables: tables}, nil
}

// ResolveID maps name to a known ID, falling back to Default
func (r *Registry) ResolveID(name string) ID {
	if id, ok := ParseID(name); ok {
		return id
	}
	return Default
}

// Resolve returns the named dataset, or the Default dataset for unknown names
func (r *Registry) Resolve(name string) models.Dataset {
	return r.tables[r.ResolveID(name)]
}

// Get returns the dataset for a known ID
func (r *Registry) Get(id ID) models.Dataset {
	return r.tables[id]
}

// Sizes reports the record count of every dataset
func (r *Registry) Sizes() []models.DatasetInfo {
	infos := make([]models.DatasetInfo, 0, len(r.tables))
	for _, id := range IDs() {
		infos = append(infos, models.DatasetInfo{Name: string(id), Records: len(r.tables[id])})
	}
	return infos
}
