// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/AleutianAI/StackForge/cmd/stackforge/config"
	"github.com/AleutianAI/StackForge/pkg/catalog"
	"github.com/AleutianAI/StackForge/pkg/logging"
	"github.com/AleutianAI/StackForge/pkg/plugin"
)

// FactoryOptions tune the wiring beyond what the config file provides.
type FactoryOptions struct {
	// KeepBackups enables manifest backups before clean-mode removal.
	// Corresponds to --keep-backups / --no-backups; also gated by
	// config.Backups.Enabled.
	KeepBackups bool
}

// newScaffoldManager wires the production dependency graph: builtin catalog,
// builtin plugins, filesystem workspace manager with optional backups.
//
// This is the single composition point; everything below it takes its
// dependencies through interfaces.
func newScaffoldManager(cfg config.StackForgeConfig, opts FactoryOptions, logger *logging.Logger) (*DefaultScaffoldManager, error) {
	ws := &Workspace{Root: cfg.Workspace.Dir}

	var backups BackupManager
	if opts.KeepBackups && cfg.Backups.Enabled {
		backupCfg := DefaultBackupConfig(ws.BackupDir())
		if cfg.Backups.MaxBackups > 0 {
			backupCfg.MaxBackups = cfg.Backups.MaxBackups
		}
		backups = NewBackupManager(backupCfg)
	}

	workspace, err := NewDefaultWorkspaceManager(cfg.Workspace.Dir, cfg.Workspace.ProjectName, backups, logger)
	if err != nil {
		return nil, err
	}

	assembler, err := NewDefaultManifestAssembler(plugin.Lookup, logger)
	if err != nil {
		return nil, err
	}

	return NewDefaultScaffoldManager(catalog.Builtin(), workspace, assembler, logger)
}

// newBackupManagerFromConfig builds the backup manager used by the
// `stackforge backups` subcommands, independent of generation wiring.
func newBackupManagerFromConfig(cfg config.StackForgeConfig) *DefaultBackupManager {
	ws := &Workspace{Root: cfg.Workspace.Dir}
	backupCfg := DefaultBackupConfig(ws.BackupDir())
	if cfg.Backups.MaxBackups > 0 {
		backupCfg.MaxBackups = cfg.Backups.MaxBackups
	}
	return NewBackupManager(backupCfg)
}
