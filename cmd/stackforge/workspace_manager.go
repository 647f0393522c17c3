// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

/*
Package main provides WorkspaceManager for preparing the generation workspace.

WorkspaceManager owns the on-disk layout of a StackForge workspace:

	<root>/
	  docker-compose.yml     assembled manifest
	  stack.env              user credentials, seeded once, never overwritten
	  stack.env.template     seed source for stack.env
	  stack.env.example      documented defaults, merged per component
	  backups/               timestamped manifest backups
	  config/<component>/    per-component configuration files
	  compose/<component>.yml  per-component service fragments
	  volumes/<component>.yml  per-component volume fragments
	  docs/<component>.md    per-component documentation
	  static/                hand-maintained files, never touched by clean

# Modes

Clean mode backs up the previous manifest, removes all generated artifacts,
and recreates the layout. Preserve mode leaves everything in place and relies
on the assembler's idempotent merge behavior.

# Invariants

  - stack.env is seeded from stack.env.template exactly once. An existing
    stack.env is never overwritten regardless of mode.
  - Clean mode never removes stack.env, stack.env.template, static/, or
    backups/.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AleutianAI/StackForge/pkg/catalog"
	"github.com/AleutianAI/StackForge/pkg/logging"
)

// =============================================================================
// Error Definitions
// =============================================================================

var (
	// ErrWorkspaceIO is returned when a workspace filesystem operation fails.
	ErrWorkspaceIO = errors.New("workspace io failure")

	// ErrEnvironmentSeedMissing is returned when stack.env must be seeded
	// but stack.env.template does not exist.
	ErrEnvironmentSeedMissing = errors.New("environment seed template missing")

	// ErrNilDependency is returned when a required dependency is nil.
	ErrNilDependency = errors.New("required dependency is nil")
)

// =============================================================================
// Modes
// =============================================================================

// Mode selects how Prepare treats an existing workspace.
type Mode int

const (
	// ModeClean removes generated artifacts and recreates the layout.
	// The previous manifest is backed up first when backups are enabled.
	ModeClean Mode = iota

	// ModePreserve leaves existing artifacts in place.
	ModePreserve
)

// String returns "clean" or "preserve".
func (m Mode) String() string {
	if m == ModePreserve {
		return "preserve"
	}
	return "clean"
}

// =============================================================================
// Workspace
// =============================================================================

// Workspace is a prepared generation root with path helpers.
// All helpers are pure; they never touch the filesystem.
type Workspace struct {
	// Root is the absolute or relative workspace root directory.
	Root string

	// ProjectName appears in the manifest preamble.
	ProjectName string
}

// ManifestPath is the assembled compose manifest.
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.Root, "docker-compose.yml")
}

// EnvPath is the user-owned credentials file.
func (w *Workspace) EnvPath() string {
	return filepath.Join(w.Root, "stack.env")
}

// EnvTemplatePath is the seed source for stack.env.
func (w *Workspace) EnvTemplatePath() string {
	return filepath.Join(w.Root, "stack.env.template")
}

// EnvExamplePath is the generated documented-defaults file.
func (w *Workspace) EnvExamplePath() string {
	return filepath.Join(w.Root, "stack.env.example")
}

// ConfigDir is the per-component configuration directory.
func (w *Workspace) ConfigDir(id catalog.ID) string {
	return filepath.Join(w.Root, "config", string(id))
}

// ComposeFragmentPath is the per-component service fragment.
func (w *Workspace) ComposeFragmentPath(id catalog.ID) string {
	return filepath.Join(w.Root, "compose", string(id)+".yml")
}

// VolumeFragmentPath is the per-component volume fragment.
func (w *Workspace) VolumeFragmentPath(id catalog.ID) string {
	return filepath.Join(w.Root, "volumes", string(id)+".yml")
}

// DocsPath is the per-component documentation file.
func (w *Workspace) DocsPath(id catalog.ID) string {
	return filepath.Join(w.Root, "docs", string(id)+".md")
}

// StaticDir holds hand-maintained files that clean mode never removes.
func (w *Workspace) StaticDir() string {
	return filepath.Join(w.Root, "static")
}

// BackupDir holds timestamped manifest backups.
func (w *Workspace) BackupDir() string {
	return filepath.Join(w.Root, "backups")
}

// =============================================================================
// Interface Definition
// =============================================================================

// WorkspaceManager prepares the workspace for a generation run.
//
// # Thread Safety
//
// Implementations need not be safe for concurrent Prepare calls; the
// scaffold manager serializes runs.
type WorkspaceManager interface {
	// Prepare readies the workspace root according to mode.
	//
	// # Description
	//
	// Creates the root on first run (including the starter
	// stack.env.template), applies clean or preserve semantics, recreates
	// the standard layout, and seeds stack.env if it does not exist.
	//
	// # Inputs
	//
	//   - ctx: Context for cancellation
	//   - mode: ModeClean or ModePreserve
	//
	// # Outputs
	//
	//   - *Workspace: Path helpers for the prepared root
	//   - error: ErrWorkspaceIO or ErrEnvironmentSeedMissing wrapped with detail
	Prepare(ctx context.Context, mode Mode) (*Workspace, error)
}

// =============================================================================
// Default Implementation
// =============================================================================

// DefaultWorkspaceManager implements WorkspaceManager on the local filesystem.
type DefaultWorkspaceManager struct {
	root        string
	projectName string

	// backups may be nil when manifest backups are disabled.
	backups BackupManager

	logger *logging.Logger
}

// NewDefaultWorkspaceManager creates a workspace manager.
//
// backups may be nil to disable manifest backups. logger is required.
func NewDefaultWorkspaceManager(root, projectName string, backups BackupManager, logger *logging.Logger) (*DefaultWorkspaceManager, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: workspace root", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}
	return &DefaultWorkspaceManager{
		root:        root,
		projectName: projectName,
		backups:     backups,
		logger:      logger,
	}, nil
}

// generatedEntries are the artifacts clean mode removes. stack.env,
// stack.env.template, static/ and backups/ are deliberately absent.
var generatedEntries = []string{
	"docker-compose.yml",
	"stack.env.example",
	"config",
	"compose",
	"volumes",
	"docs",
}

// layoutDirs is the standard directory layout recreated on every run.
var layoutDirs = []string{"config", "compose", "volumes", "docs", "static"}

// defaultEnvTemplate is written on first run. It is the seed for stack.env;
// generated per-component defaults land in stack.env.example instead.
const defaultEnvTemplate = `# stack.env.template
# Seed file for stack.env. Edit stack.env (not this file) after the first run.
# Generated per-component defaults are documented in stack.env.example;
# copy the variables you need into stack.env and set real credentials.

COMPOSE_PROJECT_NAME=stackforge
`

// Prepare readies the workspace root according to mode.
//
// See interface documentation for full details.
func (m *DefaultWorkspaceManager) Prepare(ctx context.Context, mode Mode) (*Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ws := &Workspace{Root: m.root, ProjectName: m.projectName}

	firstRun, err := m.ensureRoot(ws)
	if err != nil {
		return nil, err
	}

	if mode == ModeClean && !firstRun {
		if err := m.cleanGenerated(ws); err != nil {
			return nil, err
		}
	}

	for _, dir := range layoutDirs {
		if err := os.MkdirAll(filepath.Join(ws.Root, dir), 0755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrWorkspaceIO, dir, err)
		}
	}

	if err := m.seedEnvironment(ws); err != nil {
		return nil, err
	}

	m.logger.Info("workspace prepared", "root", ws.Root, "mode", mode.String(), "first_run", firstRun)
	return ws, nil
}

// ensureRoot creates the workspace root on first run, including the starter
// stack.env.template. Returns whether this was a first run.
func (m *DefaultWorkspaceManager) ensureRoot(ws *Workspace) (bool, error) {
	_, err := os.Stat(ws.Root)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("%w: stat %s: %v", ErrWorkspaceIO, ws.Root, err)
	}

	if err := os.MkdirAll(ws.Root, 0755); err != nil {
		return false, fmt.Errorf("%w: creating root %s: %v", ErrWorkspaceIO, ws.Root, err)
	}
	if err := os.WriteFile(ws.EnvTemplatePath(), []byte(defaultEnvTemplate), 0644); err != nil {
		return false, fmt.Errorf("%w: writing %s: %v", ErrWorkspaceIO, ws.EnvTemplatePath(), err)
	}
	return true, nil
}

// cleanGenerated backs up the previous manifest and removes generated
// artifacts. User-owned files survive.
func (m *DefaultWorkspaceManager) cleanGenerated(ws *Workspace) error {
	if m.backups != nil {
		backupPath, err := m.backups.BackupBeforeOverwrite(ws.ManifestPath())
		if err != nil {
			return fmt.Errorf("%w: backing up manifest: %v", ErrWorkspaceIO, err)
		}
		if backupPath != "" {
			m.logger.Info("previous manifest backed up", "backup", backupPath)
		}
	}

	for _, entry := range generatedEntries {
		path := filepath.Join(ws.Root, entry)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("%w: removing %s: %v", ErrWorkspaceIO, path, err)
		}
	}
	return nil
}

// seedEnvironment copies stack.env.template to stack.env if stack.env does
// not exist yet. An existing stack.env is never touched.
func (m *DefaultWorkspaceManager) seedEnvironment(ws *Workspace) error {
	if _, err := os.Stat(ws.EnvPath()); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", ErrWorkspaceIO, ws.EnvPath(), err)
	}

	src, err := os.Open(ws.EnvTemplatePath())
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrEnvironmentSeedMissing, ws.EnvTemplatePath())
	}
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrWorkspaceIO, ws.EnvTemplatePath(), err)
	}
	defer src.Close()

	dst, err := os.OpenFile(ws.EnvPath(), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrWorkspaceIO, ws.EnvPath(), err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("%w: seeding %s: %v", ErrWorkspaceIO, ws.EnvPath(), err)
	}

	m.logger.Info("environment seeded", "path", ws.EnvPath())
	return nil
}

// Compile-time interface check
var _ WorkspaceManager = (*DefaultWorkspaceManager)(nil)
