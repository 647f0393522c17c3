// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

/*
ManifestAssembler turns a dependency resolution into on-disk artifacts.

The assembler is the sole writer of generated files. Plugins are pure
emitters invoked strictly sequentially in resolved order; they never touch
the filesystem themselves.

# Manifest layout

The assembled docker-compose.yml has a fixed section order:

 1. preamble comment (no timestamps: reruns are byte-identical)
 2. services, one fragment per component in resolved order
 3. networks, the four fixed tier subnets
 4. volumes, aggregated from all components in resolved order

# Environment merge

Per-component environment defaults are merged into stack.env.example. A
block is appended only when its sentinel prefix is absent from the file,
so preserve-mode reruns never duplicate blocks.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/StackForge/pkg/catalog"
	"github.com/AleutianAI/StackForge/pkg/logging"
	"github.com/AleutianAI/StackForge/pkg/plugin"
	"github.com/AleutianAI/StackForge/pkg/resolve"
	"github.com/AleutianAI/StackForge/pkg/ux"
)

// ErrManifestInvalid is returned when the assembled manifest fails the
// defensive YAML well-formedness check. It indicates a broken plugin
// fragment, not bad user input.
var ErrManifestInvalid = errors.New("assembled manifest is not valid YAML")

// networksSection declares the four fixed tier networks. Every service
// fragment references a subset of these by name.
const networksSection = `networks:
  frontend:
    driver: bridge
    ipam:
      config:
        - subnet: 172.28.1.0/24
  backend:
    driver: bridge
    ipam:
      config:
        - subnet: 172.28.2.0/24
  database:
    driver: bridge
    ipam:
      config:
        - subnet: 172.28.3.0/24
  monitoring:
    driver: bridge
    ipam:
      config:
        - subnet: 172.28.4.0/24
`

// AssembleResult summarizes what a single Assemble call produced.
type AssembleResult struct {
	// ManifestPath is the assembled docker-compose.yml.
	ManifestPath string

	// Assembled lists the components whose fragments made it into the
	// manifest, in order.
	Assembled []catalog.ID

	// Skipped lists resolved components that had no registered plugin.
	Skipped []catalog.ID

	// ConfigFiles is the number of per-component config files written.
	ConfigFiles int

	// EnvBlocksAdded lists components whose env defaults were newly merged
	// into stack.env.example this run.
	EnvBlocksAdded []catalog.ID
}

// ManifestAssembler assembles workspace artifacts from a resolution.
type ManifestAssembler interface {
	// Assemble writes all generated artifacts for the resolution into ws.
	//
	// # Inputs
	//
	//   - ctx: Context for cancellation, checked between components
	//   - ws: Prepared workspace
	//   - res: Dependency resolution to materialize
	//
	// # Outputs
	//
	//   - *AssembleResult: Summary of produced artifacts
	//   - error: ErrWorkspaceIO on write failure, ErrManifestInvalid if the
	//     final manifest fails the YAML check
	//
	// # Edge Cases
	//
	// A component without a registered plugin is skipped with a warning;
	// the manifest is still produced from the remaining components.
	Assemble(ctx context.Context, ws *Workspace, res *resolve.Resolution) (*AssembleResult, error)
}

// PluginLookup resolves a component id to its emitter.
type PluginLookup func(catalog.ID) (plugin.Plugin, bool)

// DefaultManifestAssembler implements ManifestAssembler over a plugin lookup.
type DefaultManifestAssembler struct {
	lookup PluginLookup
	logger *logging.Logger
}

// NewDefaultManifestAssembler creates an assembler.
func NewDefaultManifestAssembler(lookup PluginLookup, logger *logging.Logger) (*DefaultManifestAssembler, error) {
	if lookup == nil {
		return nil, fmt.Errorf("%w: plugin lookup", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}
	return &DefaultManifestAssembler{lookup: lookup, logger: logger}, nil
}

// Assemble writes all generated artifacts for the resolution into ws.
//
// See interface documentation for full details.
func (a *DefaultManifestAssembler) Assemble(ctx context.Context, ws *Workspace, res *resolve.Resolution) (*AssembleResult, error) {
	result := &AssembleResult{ManifestPath: ws.ManifestPath()}

	var services strings.Builder
	var volumes strings.Builder
	var plugins []plugin.Plugin

	for _, id := range res.Order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, ok := a.lookup(id)
		if !ok {
			ux.Warning("no plugin registered for %q, skipping", id)
			a.logger.Warn("plugin missing", "component", id)
			result.Skipped = append(result.Skipped, id)
			continue
		}
		plugins = append(plugins, p)
		result.Assembled = append(result.Assembled, id)

		fragment := p.EmitComposeFragment()
		services.WriteString(fragment)

		for _, v := range p.EmitVolumes() {
			volumes.WriteString("  " + v.Name + ":\n")
			volumes.WriteString(v.Definition)
		}

		if err := a.writeComponentArtifacts(ws, p, fragment, result); err != nil {
			return nil, err
		}
	}

	manifest := a.buildManifest(ws.ProjectName, services.String(), volumes.String())

	// Defensive: a malformed plugin fragment must never reach disk as the
	// final manifest.
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(manifest), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}

	if err := os.WriteFile(ws.ManifestPath(), []byte(manifest), 0644); err != nil {
		return nil, fmt.Errorf("%w: writing manifest: %v", ErrWorkspaceIO, err)
	}

	added, err := a.mergeEnvDefaults(ws, plugins)
	if err != nil {
		return nil, err
	}
	result.EnvBlocksAdded = added

	a.logger.Info("manifest assembled",
		"path", result.ManifestPath,
		"components", len(result.Assembled),
		"skipped", len(result.Skipped),
		"config_files", result.ConfigFiles,
	)
	return result, nil
}

// buildManifest concatenates the fixed manifest sections.
func (a *DefaultManifestAssembler) buildManifest(projectName, services, volumes string) string {
	var b strings.Builder

	b.WriteString("# docker-compose.yml for " + projectName + "\n")
	b.WriteString("# Generated by stackforge. Do not edit by hand; rerun stackforge to regenerate.\n")
	b.WriteString("# Reruns with the same component set produce byte-identical output.\n")
	b.WriteString("\n")

	b.WriteString("services:\n")
	b.WriteString(services)
	b.WriteString("\n")

	b.WriteString(networksSection)
	b.WriteString("\n")

	if volumes == "" {
		b.WriteString("volumes: {}\n")
	} else {
		b.WriteString("volumes:\n")
		b.WriteString(volumes)
	}

	return b.String()
}

// writeComponentArtifacts writes a component's config files, fragment
// copies, and documentation.
func (a *DefaultManifestAssembler) writeComponentArtifacts(ws *Workspace, p plugin.Plugin, fragment string, result *AssembleResult) error {
	id := p.ID()

	for _, f := range p.EmitConfig() {
		path := filepath.Join(ws.ConfigDir(id), filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("%w: creating config dir for %s: %v", ErrWorkspaceIO, id, err)
		}
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return fmt.Errorf("%w: writing %s: %v", ErrWorkspaceIO, path, err)
		}
		result.ConfigFiles++
	}

	if err := os.WriteFile(ws.ComposeFragmentPath(id), []byte(fragment), 0644); err != nil {
		return fmt.Errorf("%w: writing compose fragment for %s: %v", ErrWorkspaceIO, id, err)
	}

	if vols := p.EmitVolumes(); len(vols) > 0 {
		var b strings.Builder
		for _, v := range vols {
			b.WriteString("  " + v.Name + ":\n")
			b.WriteString(v.Definition)
		}
		if err := os.WriteFile(ws.VolumeFragmentPath(id), []byte(b.String()), 0644); err != nil {
			return fmt.Errorf("%w: writing volume fragment for %s: %v", ErrWorkspaceIO, id, err)
		}
	}

	if err := os.WriteFile(ws.DocsPath(id), []byte(p.EmitDocs()), 0644); err != nil {
		return fmt.Errorf("%w: writing docs for %s: %v", ErrWorkspaceIO, id, err)
	}

	return nil
}

// mergeEnvDefaults appends each plugin's env block to stack.env.example
// unless its sentinel is already present. Returns the ids whose blocks
// were newly added.
func (a *DefaultManifestAssembler) mergeEnvDefaults(ws *Workspace, plugins []plugin.Plugin) ([]catalog.ID, error) {
	existing, err := os.ReadFile(ws.EnvExamplePath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrWorkspaceIO, ws.EnvExamplePath(), err)
	}

	content := string(existing)
	if content == "" {
		content = "# stack.env.example\n" +
			"# Documented defaults for every generated component.\n" +
			"# Copy what you need into stack.env and replace placeholder credentials.\n"
	}

	var added []catalog.ID
	for _, p := range plugins {
		env := p.EmitEnvDefaults()
		if strings.Contains(content, env.Sentinel) {
			continue
		}
		content += "\n" + env.Block
		added = append(added, p.ID())
	}

	if err := os.WriteFile(ws.EnvExamplePath(), []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrWorkspaceIO, ws.EnvExamplePath(), err)
	}
	return added, nil
}

// Compile-time interface check
var _ ManifestAssembler = (*DefaultManifestAssembler)(nil)
