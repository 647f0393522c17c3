// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

type StackForgeConfig struct {
	// Workspace: where the generated deployment tree lives
	Workspace WorkspaceConfig `yaml:"workspace" validate:"required"`

	// Backups: manifest backup behavior for clean-mode runs
	Backups BackupsConfig `yaml:"backups"`

	// Logging: structured log destination and verbosity
	Logging LoggingConfig `yaml:"logging"`
}

type WorkspaceConfig struct {
	// Dir is the root of the generated workspace, e.g. ./deploy
	Dir string `yaml:"dir" validate:"required"`

	// ProjectName is used in the manifest preamble and compose project naming.
	ProjectName string `yaml:"project_name" validate:"required,lowercase"`
}

type BackupsConfig struct {
	// Enabled toggles manifest backups before clean-mode removal.
	Enabled bool `yaml:"enabled"`

	// MaxBackups is the retention count per manifest. 0 means default (5).
	MaxBackups int `yaml:"max_backups" validate:"gte=0,lte=50"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Dir enables file logging when set. Supports ~ expansion.
	Dir string `yaml:"dir"`
}

func DefaultConfig() StackForgeConfig {
	return StackForgeConfig{
		Workspace: WorkspaceConfig{
			Dir:         "./deploy",
			ProjectName: "stackforge",
		},
		Backups: BackupsConfig{
			Enabled:    true,
			MaxBackups: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
