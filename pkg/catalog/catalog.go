// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog defines the fixed component catalog for StackForge.
//
// The catalog is the authoritative table of deployable components: each entry
// maps a component identifier to a human-readable description and to at most
// one hard dependency. The catalog is immutable once constructed and performs
// no I/O; extending StackForge with a new component means adding an entry here
// plus a matching emitter in pkg/plugin.
package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownComponent is returned when a queried id is not in the catalog.
var ErrUnknownComponent = errors.New("unknown component")

// ID identifies one deployable component bundle (e.g. "postgresql" covers
// PostgreSQL plus pgAdmin). IDs are opaque string keys, unique within a
// Registry, and immutable once defined.
type ID string

// Descriptor is one read-only catalog entry.
//
// Dependency is the id of the component that must be present whenever this
// component is deployed, or empty when the component stands alone. The shipped
// catalog only models depth-1 chains, but consumers must not rely on that.
type Descriptor struct {
	// ID is the component identifier.
	ID ID

	// Description is the one-line human-readable summary shown in listings.
	Description string

	// Dependency is the hard dependency id, or "" for none.
	Dependency ID
}

// Registry is an ordered, immutable mapping from ID to Descriptor.
//
// # Thread Safety
//
// Registry is a value type with no mutation after construction; it is safe
// for concurrent use.
type Registry struct {
	order   []ID
	entries map[ID]Descriptor
}

// New builds a Registry from an explicit descriptor list.
//
// Entry order is preserved and drives AllIDs ordering. Duplicate ids keep the
// first descriptor. Tests use New to build synthetic registries, including
// deliberately cyclic ones for the resolver's cycle guard.
func New(descriptors ...Descriptor) Registry {
	reg := Registry{
		order:   make([]ID, 0, len(descriptors)),
		entries: make(map[ID]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := reg.entries[d.ID]; exists {
			continue
		}
		reg.order = append(reg.order, d.ID)
		reg.entries[d.ID] = d
	}
	return reg
}

// Builtin returns the shipped eight-component catalog.
//
// The only declared dependency edge is grafana -> prometheus. The catalog is
// acyclic by construction; the resolver still guards against cycles so a
// future bad edit fails loudly instead of looping.
func Builtin() Registry {
	return New(
		Descriptor{ID: "core", Description: "HAProxy edge router and Nginx static frontend"},
		Descriptor{ID: "postgresql", Description: "PostgreSQL database with pgAdmin web console"},
		Descriptor{ID: "mongodb", Description: "MongoDB document store with Mongo Express console"},
		Descriptor{ID: "redis", Description: "Redis in-memory cache"},
		Descriptor{ID: "rabbitmq", Description: "RabbitMQ message broker with management UI"},
		Descriptor{ID: "prometheus", Description: "Prometheus metrics store and scraper"},
		Descriptor{ID: "grafana", Description: "Grafana dashboards", Dependency: "prometheus"},
		Descriptor{ID: "portainer", Description: "Portainer container management UI"},
	)
}

// Describe returns the description for id.
//
// # Outputs
//
//   - string: The component description.
//   - error: ErrUnknownComponent (wrapped with the offending id) when id is
//     outside the catalog.
func (r Registry) Describe(id ID) (string, error) {
	d, ok := r.entries[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownComponent, id)
	}
	return d.Description, nil
}

// DependencyOf returns the declared dependency for id, or "" when the
// component declares none.
//
// Querying an id outside the catalog is an error, matching Describe.
func (r Registry) DependencyOf(id ID) (ID, error) {
	d, ok := r.entries[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownComponent, id)
	}
	return d.Dependency, nil
}

// Contains reports whether id is a catalog member.
func (r Registry) Contains(id ID) bool {
	_, ok := r.entries[id]
	return ok
}

// AllIDs returns every catalog id in registration order.
//
// The returned slice is a copy; callers may modify it freely.
func (r Registry) AllIDs() []ID {
	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of catalog entries.
func (r Registry) Len() int {
	return len(r.order)
}
