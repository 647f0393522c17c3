// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package plugin holds the per-component emitters behind StackForge's
// generation pipeline.
//
// Each catalog component has exactly one Plugin implementation. A plugin is a
// pure data emitter: it returns configuration file bodies, a compose service
// fragment, volume declarations, environment defaults, and documentation text.
// Plugins never touch the filesystem; the manifest assembler is the sole
// writer, which keeps output ordering deterministic.
//
// The set is closed and explicitly enumerated (see Builtin). Adding a
// component means adding a catalog entry plus one Plugin here.
package plugin

import (
	"github.com/AleutianAI/StackForge/pkg/catalog"
)

// ConfigFile is one configuration file owned by a component.
type ConfigFile struct {
	// Path is relative to the component's config directory,
	// e.g. "haproxy/haproxy.cfg" lands in config/core/haproxy/haproxy.cfg.
	Path string

	// Content is the full file body.
	Content string
}

// Volume is one named volume declaration.
type Volume struct {
	// Name is the compose volume name, unique across all components.
	Name string

	// Definition is the YAML body under the volume key, indented for the
	// manifest's volumes section (4 spaces). Empty means default driver.
	Definition string
}

// EnvDefaults is a component's contribution to the shared environment
// template artifact.
type EnvDefaults struct {
	// Sentinel is a substring unique to the component's variable namespace
	// (its key prefix). The assembler appends Block only when Sentinel is
	// absent from the destination, making the merge idempotent.
	Sentinel string

	// Block is the commented key/value block to append.
	Block string
}

// Plugin is the uniform per-component emission contract.
//
// Implementations must be stateless and deterministic: the same plugin must
// emit byte-identical output on every call, because manifest reproducibility
// is verified byte-for-byte.
type Plugin interface {
	// ID returns the owning catalog component id.
	ID() catalog.ID

	// EmitConfig returns the component's configuration files, if any.
	EmitConfig() []ConfigFile

	// EmitComposeFragment returns the service definitions as YAML indented
	// for the manifest's services section (entries at 2 spaces, no
	// "services:" header). Admin web UIs are gated behind the "admin"
	// compose profile.
	EmitComposeFragment() string

	// EmitVolumes returns the named volumes the component requires.
	EmitVolumes() []Volume

	// EmitEnvDefaults returns the component's environment defaults block.
	EmitEnvDefaults() EnvDefaults

	// EmitDocs returns the component's markdown documentation stub.
	EmitDocs() string
}

// Builtin returns every shipped plugin in catalog order.
func Builtin() []Plugin {
	return []Plugin{
		corePlugin{},
		postgresqlPlugin{},
		mongodbPlugin{},
		redisPlugin{},
		rabbitmqPlugin{},
		prometheusPlugin{},
		grafanaPlugin{},
		portainerPlugin{},
	}
}

// Lookup returns the plugin registered for id, if any.
//
// A catalog component without a plugin is tolerated by the assembler (warn
// and skip), so Lookup reports absence instead of erroring.
func Lookup(id catalog.ID) (Plugin, bool) {
	for _, p := range Builtin() {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}
