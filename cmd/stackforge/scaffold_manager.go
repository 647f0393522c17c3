// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

/*
ScaffoldManager orchestrates a complete generation run.

ScaffoldManager sits at the top of the dependency hierarchy:

	┌──────────────────────────────────────────────────────────┐
	│                     ScaffoldManager                      │
	│  Generate() sequence:                                    │
	│    1. validation.SanitizeComponentNames  // input shape  │
	│    2. resolve.Resolve()                  // closure      │
	│    3. WorkspaceManager.Prepare()         // layout       │
	│    4. ManifestAssembler.Assemble()       // artifacts    │
	└──────────────────────────────────────────────────────────┘

Steps 1 and 2 run before any filesystem mutation: a request containing
unknown or malformed component names fails with every offender listed and
leaves the workspace untouched.

# Design Principles

  - Dependency Injection: workspace and assembler go through interfaces
  - Single Responsibility: resolution, layout, and emission stay separate
  - Testability: full mock support for all dependencies

# Thread Safety

Safe for concurrent use; Generate calls are serialized via mutex.
*/
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/StackForge/pkg/catalog"
	"github.com/AleutianAI/StackForge/pkg/logging"
	"github.com/AleutianAI/StackForge/pkg/resolve"
	"github.com/AleutianAI/StackForge/pkg/validation"
)

// =============================================================================
// Supporting Types
// =============================================================================

// GenerateOptions configures a generation run.
type GenerateOptions struct {
	// Components are the requested component names, as typed by the user.
	Components []string

	// Clean selects ModeClean when true, ModePreserve otherwise.
	// Corresponds to --clean / --no-clean.
	Clean bool
}

// GenerateResult summarizes a completed generation run.
type GenerateResult struct {
	// RunID uniquely identifies this run in logs and JSON output.
	RunID string `json:"run_id"`

	// Requested are the validated, deduplicated component ids in request order.
	Requested []catalog.ID `json:"requested"`

	// Added are dependencies pulled in beyond the request.
	Added []catalog.ID `json:"added,omitempty"`

	// Notices are human-readable dependency notices.
	Notices []string `json:"notices,omitempty"`

	// Skipped are resolved components without a registered plugin.
	Skipped []catalog.ID `json:"skipped,omitempty"`

	// ManifestPath is the assembled docker-compose.yml.
	ManifestPath string `json:"manifest_path"`

	// EnvPath is the user credentials file.
	EnvPath string `json:"env_path"`

	// EnvExamplePath documents per-component defaults.
	EnvExamplePath string `json:"env_example_path"`

	// ConfigFiles is the number of per-component config files written.
	ConfigFiles int `json:"config_files"`

	// Duration is how long the run took.
	Duration time.Duration `json:"-"`
}

// =============================================================================
// Interface Definition
// =============================================================================

// ScaffoldManager runs the validate-resolve-prepare-assemble pipeline.
//
// # Thread Safety
//
// Implementations must serialize Generate calls.
type ScaffoldManager interface {
	// Generate produces a complete workspace for the requested components.
	//
	// # Inputs
	//
	//   - ctx: Context for cancellation
	//   - opts: Requested components and mode
	//
	// # Outputs
	//
	//   - *GenerateResult: Summary of the run
	//   - error: Validation and resolution errors occur before any
	//     filesystem mutation; workspace and assembly errors after.
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// =============================================================================
// Default Implementation
// =============================================================================

// DefaultScaffoldManager implements ScaffoldManager.
type DefaultScaffoldManager struct {
	registry  catalog.Registry
	workspace WorkspaceManager
	assembler ManifestAssembler
	logger    *logging.Logger

	// mu serializes Generate runs.
	mu sync.Mutex
}

// NewDefaultScaffoldManager creates a scaffold manager with all dependencies.
func NewDefaultScaffoldManager(
	registry catalog.Registry,
	workspace WorkspaceManager,
	assembler ManifestAssembler,
	logger *logging.Logger,
) (*DefaultScaffoldManager, error) {
	if workspace == nil {
		return nil, fmt.Errorf("%w: WorkspaceManager", ErrNilDependency)
	}
	if assembler == nil {
		return nil, fmt.Errorf("%w: ManifestAssembler", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}
	return &DefaultScaffoldManager{
		registry:  registry,
		workspace: workspace,
		assembler: assembler,
		logger:    logger,
	}, nil
}

// Generate produces a complete workspace for the requested components.
//
// See interface documentation for full details.
func (s *DefaultScaffoldManager) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	// Phase 1: input validation, before any filesystem mutation.
	names, err := s.sanitizeComponents(opts.Components)
	if err != nil {
		return nil, err
	}

	// Phase 2: dependency resolution, still before any mutation. Unknown
	// components are all reported together.
	res, err := resolve.Resolve(s.registry, names)
	if err != nil {
		return nil, err
	}
	logger.Info("resolution complete",
		"requested", len(res.Requested),
		"added", len(res.Added),
	)

	// Phase 3: workspace layout.
	mode := ModePreserve
	if opts.Clean {
		mode = ModeClean
	}
	ws, err := s.workspace.Prepare(ctx, mode)
	if err != nil {
		return nil, err
	}

	// Phase 4: artifact assembly.
	assembled, err := s.assembler.Assemble(ctx, ws, res)
	if err != nil {
		return nil, err
	}

	notices := make([]string, 0, len(res.Notices))
	for _, n := range res.Notices {
		notices = append(notices, n.String())
	}

	result := &GenerateResult{
		RunID:          runID,
		Requested:      res.Requested,
		Added:          res.Added,
		Notices:        notices,
		Skipped:        assembled.Skipped,
		ManifestPath:   assembled.ManifestPath,
		EnvPath:        ws.EnvPath(),
		EnvExamplePath: ws.EnvExamplePath(),
		ConfigFiles:    assembled.ConfigFiles,
		Duration:       time.Since(start),
	}

	logger.Info("generation complete",
		"manifest", result.ManifestPath,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// sanitizeComponents normalizes the requested names and rejects malformed
// ones, listing every offender in a single error.
func (s *DefaultScaffoldManager) sanitizeComponents(components []string) ([]catalog.ID, error) {
	names := make([]catalog.ID, 0, len(components))
	var invalid []string
	for _, c := range components {
		sanitized, err := validation.SanitizeComponentName(c)
		if err != nil {
			invalid = append(invalid, c)
			continue
		}
		names = append(names, catalog.ID(sanitized))
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid component names: %v", invalid)
	}
	return names, nil
}

// Compile-time interface check
var _ ScaffoldManager = (*DefaultScaffoldManager)(nil)
