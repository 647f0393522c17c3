// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package resolve computes the dependency closure of a requested component set.
//
// Resolution is order-preserving: the caller's request order comes first, then
// auto-added dependencies in discovery order. The output order is load-bearing
// downstream because the manifest assembler emits service fragments in exactly
// this order.
package resolve

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/StackForge/pkg/catalog"
)

// ErrDependencyCycle is returned when the registry contains a circular
// dependency chain. The shipped catalog is acyclic by construction; this is a
// guard against a future bad registry edit, not an expected runtime condition.
var ErrDependencyCycle = errors.New("dependency cycle detected")

// Notice records one auto-added dependency and the component that pulled it in.
type Notice struct {
	// Dependency is the component that was added.
	Dependency catalog.ID

	// RequestedBy is the closest requested-or-added component whose declared
	// dependency caused the addition.
	RequestedBy catalog.ID
}

// String renders the notice the way the CLI reports it.
func (n Notice) String() string {
	return fmt.Sprintf("dependency %q added (required by %q)", n.Dependency, n.RequestedBy)
}

// Resolution is the closed component set for one run.
//
// Invariant: for every member with a declared dependency, that dependency is
// also a member. Order holds Requested first (duplicates collapsed to first
// occurrence), then Added in discovery order.
type Resolution struct {
	// Order is the full resolved sequence: requested ++ added.
	Order []catalog.ID

	// Requested is the deduplicated caller-supplied sequence.
	Requested []catalog.ID

	// Added lists dependencies appended by the resolver, in discovery order.
	Added []catalog.ID

	// Notices describes each member of Added.
	Notices []Notice
}

// Contains reports whether id is part of the resolution.
func (r *Resolution) Contains(id catalog.ID) bool {
	for _, member := range r.Order {
		if member == id {
			return true
		}
	}
	return false
}

// Resolve computes the dependency closure of requested against reg.
//
// # Description
//
// Requested items are deduplicated to their first occurrence and validated
// against the registry; every invalid id is collected so the caller can report
// them all together. Each requested item's declared dependency chain is then
// walked; dependencies not already present are appended after all requested
// items, in the order they are discovered, with one Notice each. A dependency
// that was explicitly requested produces no duplicate and no notice.
//
// # Outputs
//
//   - *Resolution: The closed, ordered set. Nil on error.
//   - error: catalog.ErrUnknownComponent listing every invalid id, or
//     ErrDependencyCycle if the registry chain loops.
//
// # Edge Cases
//
//   - Requesting the same component twice is idempotent.
//   - Resolving a resolution's Order again adds nothing new.
func Resolve(reg catalog.Registry, requested []catalog.ID) (*Resolution, error) {
	seen := make(map[catalog.ID]bool, len(requested))
	deduped := make([]catalog.ID, 0, len(requested))
	var invalid []catalog.ID

	for _, id := range requested {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !reg.Contains(id) {
			invalid = append(invalid, id)
			continue
		}
		deduped = append(deduped, id)
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %v", catalog.ErrUnknownComponent, invalid)
	}

	res := &Resolution{
		Requested: deduped,
		Order:     append([]catalog.ID(nil), deduped...),
	}

	member := make(map[catalog.ID]bool, len(deduped))
	for _, id := range deduped {
		member[id] = true
	}

	for _, id := range deduped {
		if err := walkChain(reg, id, member, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// walkChain follows start's dependency chain, appending unseen members.
//
// Each registry entry declares at most one dependency, so the chain is a
// simple path; a per-walk visiting set is enough to detect cycles.
func walkChain(reg catalog.Registry, start catalog.ID, member map[catalog.ID]bool, res *Resolution) error {
	visiting := map[catalog.ID]bool{start: true}
	current := start

	for {
		dep, err := reg.DependencyOf(current)
		if err != nil {
			// A declared dependency pointing outside the registry is a
			// registry defect, surfaced as the same unknown-component error.
			return fmt.Errorf("dependency of %q: %w", current, err)
		}
		if dep == "" {
			return nil
		}
		if visiting[dep] {
			return fmt.Errorf("%w: %q -> %q", ErrDependencyCycle, current, dep)
		}
		visiting[dep] = true

		if !member[dep] {
			member[dep] = true
			res.Added = append(res.Added, dep)
			res.Order = append(res.Order, dep)
			res.Notices = append(res.Notices, Notice{Dependency: dep, RequestedBy: current})
		}
		current = dep
	}
}
