// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plugin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/StackForge/pkg/catalog"
)

// TestBuiltin_CoversCatalog verifies every catalog component has a plugin
// and every plugin maps back to a catalog component.
func TestBuiltin_CoversCatalog(t *testing.T) {
	reg := catalog.Builtin()

	byID := make(map[catalog.ID]Plugin)
	for _, p := range Builtin() {
		byID[p.ID()] = p
	}

	for _, id := range reg.AllIDs() {
		_, ok := byID[id]
		assert.True(t, ok, "catalog component %s has no plugin", id)
	}
	for id := range byID {
		assert.True(t, reg.Contains(id), "plugin %s has no catalog entry", id)
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("grafana")
	require.True(t, ok)
	assert.Equal(t, catalog.ID("grafana"), p.ID())

	_, ok = Lookup("bogus")
	assert.False(t, ok)
}

// TestEmitComposeFragment_ValidYAML parses each fragment under a services key
// and checks the declared service entries are well-formed mappings.
func TestEmitComposeFragment_ValidYAML(t *testing.T) {
	for _, p := range Builtin() {
		fragment := p.EmitComposeFragment()
		require.NotEmpty(t, fragment, "plugin %s emitted empty fragment", p.ID())
		assert.False(t, strings.Contains(fragment, "services:"),
			"plugin %s fragment must not carry its own services header", p.ID())

		var doc struct {
			Services map[string]map[string]any `yaml:"services"`
		}
		err := yaml.Unmarshal([]byte("services:\n"+fragment), &doc)
		require.NoError(t, err, "plugin %s fragment is not valid YAML", p.ID())
		require.NotEmpty(t, doc.Services, "plugin %s fragment declares no services", p.ID())

		for name, svc := range doc.Services {
			assert.Contains(t, svc, "image", "service %s of %s has no image", name, p.ID())
		}
	}
}

// TestEmitVolumes_MatchFragmentReferences checks every named volume a
// fragment mounts is also declared, and volume names are globally unique.
func TestEmitVolumes_MatchFragmentReferences(t *testing.T) {
	seen := make(map[string]catalog.ID)
	for _, p := range Builtin() {
		for _, v := range p.EmitVolumes() {
			require.NotEmpty(t, v.Name)
			prev, dup := seen[v.Name]
			assert.False(t, dup, "volume %s declared by both %s and %s", v.Name, prev, p.ID())
			seen[v.Name] = p.ID()

			assert.Contains(t, p.EmitComposeFragment(), v.Name+":",
				"plugin %s declares volume %s but never mounts it", p.ID(), v.Name)
		}
	}
}

func TestEmitEnvDefaults_SentinelInBlock(t *testing.T) {
	seen := make(map[string]catalog.ID)
	for _, p := range Builtin() {
		env := p.EmitEnvDefaults()
		require.NotEmpty(t, env.Sentinel, "plugin %s has no sentinel", p.ID())
		require.NotEmpty(t, env.Block, "plugin %s has no env block", p.ID())

		assert.Contains(t, env.Block, env.Sentinel,
			"plugin %s sentinel %q not present in its own block", p.ID(), env.Sentinel)
		assert.True(t, strings.HasSuffix(env.Block, "\n"),
			"plugin %s env block must end with a newline", p.ID())

		prev, dup := seen[env.Sentinel]
		assert.False(t, dup, "sentinel %q shared by %s and %s", env.Sentinel, prev, p.ID())
		seen[env.Sentinel] = p.ID()
	}
}

// Sentinels must not match another component's block, or a preserve-mode
// rerun could wrongly skip a merge.
func TestEmitEnvDefaults_SentinelsDisjoint(t *testing.T) {
	plugins := Builtin()
	for _, p := range plugins {
		for _, other := range plugins {
			if p.ID() == other.ID() {
				continue
			}
			assert.NotContains(t, other.EmitEnvDefaults().Block, p.EmitEnvDefaults().Sentinel,
				"sentinel of %s matches env block of %s", p.ID(), other.ID())
		}
	}
}

func TestEmitConfig_RelativePaths(t *testing.T) {
	for _, p := range Builtin() {
		for _, f := range p.EmitConfig() {
			assert.NotEmpty(t, f.Path, "plugin %s emitted config with empty path", p.ID())
			assert.False(t, strings.HasPrefix(f.Path, "/"),
				"plugin %s config path %s must be relative", p.ID(), f.Path)
			assert.NotContains(t, f.Path, "..", "plugin %s config path escapes", p.ID())
			assert.NotEmpty(t, f.Content)
		}
	}
}

func TestEmitDocs_NonEmptyMarkdown(t *testing.T) {
	for _, p := range Builtin() {
		docs := p.EmitDocs()
		require.NotEmpty(t, docs, "plugin %s emitted no docs", p.ID())
		assert.True(t, strings.HasPrefix(docs, "# "+string(p.ID())),
			"plugin %s docs should open with its own heading", p.ID())
	}
}

// TestAdminProfileGating verifies the admin web UIs opt in via the compose
// admin profile while core services never do.
func TestAdminProfileGating(t *testing.T) {
	gated := map[catalog.ID]bool{"postgresql": true, "mongodb": true, "portainer": true}
	for _, p := range Builtin() {
		fragment := p.EmitComposeFragment()
		if gated[p.ID()] {
			assert.Contains(t, fragment, `profiles: ["admin"]`,
				"plugin %s should gate its admin UI", p.ID())
		} else {
			assert.NotContains(t, fragment, `profiles:`,
				"plugin %s should not be profile-gated", p.ID())
		}
	}
}

// TestEmissionDeterminism: plugins must emit byte-identical output per call.
func TestEmissionDeterminism(t *testing.T) {
	for _, p := range Builtin() {
		assert.Equal(t, p.EmitComposeFragment(), p.EmitComposeFragment())
		assert.Equal(t, p.EmitEnvDefaults(), p.EmitEnvDefaults())
		assert.Equal(t, p.EmitConfig(), p.EmitConfig())
		assert.Equal(t, p.EmitVolumes(), p.EmitVolumes())
		assert.Equal(t, p.EmitDocs(), p.EmitDocs())
	}
}
