// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_ValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackforge.yaml")
	content := `workspace:
  dir: ./deploy
  project_name: myproject
backups:
  enabled: true
  max_backups: 10
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Workspace.ProjectName != "myproject" {
		t.Errorf("ProjectName = %q, want %q", cfg.Workspace.ProjectName, "myproject")
	}
	if cfg.Backups.MaxBackups != 10 {
		t.Errorf("MaxBackups = %d, want 10", cfg.Backups.MaxBackups)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadFile_DefaultsPreserved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackforge.yaml")
	// Partial config: unset fields keep defaults.
	content := `workspace:
  dir: /tmp/ws
  project_name: partial
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level not preserved, got %q", cfg.Logging.Level)
	}
}

func TestLoadFile_InvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackforge.yaml")
	content := `workspace:
  dir: ./deploy
  project_name: bad
logging:
  level: loud
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for bad log level")
	}
}

func TestLoadFile_MissingWorkspaceDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackforge.yaml")
	content := `workspace:
  dir: ""
  project_name: proj
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for empty workspace dir")
	}
}

func TestLoadFile_UppercaseProjectName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackforge.yaml")
	content := `workspace:
  dir: ./deploy
  project_name: MyProject
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for uppercase project name")
	}
}

func TestCreateDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stackforge.yaml")
	if err := createDefault(path); err != nil {
		t.Fatalf("createDefault() error = %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() of default config error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("round-tripped default config = %+v, want %+v", *cfg, want)
	}
}
