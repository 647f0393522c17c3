// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AleutianAI/StackForge/pkg/logging"
)

// testLogger returns a quiet logger for tests.
func testLogger() *logging.Logger {
	return logging.New(logging.Config{Quiet: true})
}

// MockBackupManager records backup calls for verification.
type MockBackupManager struct {
	BackedUp   []string
	ReturnPath string
	ReturnErr  error
}

func (m *MockBackupManager) BackupBeforeOverwrite(path string) (string, error) {
	m.BackedUp = append(m.BackedUp, path)
	return m.ReturnPath, m.ReturnErr
}

func (m *MockBackupManager) ListBackups(string) ([]BackupInfo, error) { return nil, nil }
func (m *MockBackupManager) RestoreBackup(string) error               { return nil }
func (m *MockBackupManager) CleanOldBackups(string, time.Duration) (int, error) {
	return 0, nil
}

var _ BackupManager = (*MockBackupManager)(nil)

func newTestWorkspaceManager(t *testing.T, root string, backups BackupManager) *DefaultWorkspaceManager {
	t.Helper()
	mgr, err := NewDefaultWorkspaceManager(root, "testproj", backups, testLogger())
	if err != nil {
		t.Fatalf("NewDefaultWorkspaceManager() error = %v", err)
	}
	return mgr
}

func TestPrepare_FirstRunCreatesLayoutAndSeedsEnv(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deploy")
	mgr := newTestWorkspaceManager(t, root, nil)

	ws, err := mgr.Prepare(context.Background(), ModeClean)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	for _, dir := range []string{"config", "compose", "volumes", "docs", "static"} {
		if _, err := os.Stat(filepath.Join(root, dir)); err != nil {
			t.Errorf("layout dir %s missing: %v", dir, err)
		}
	}

	// First run writes the template and seeds stack.env from it.
	template, err := os.ReadFile(ws.EnvTemplatePath())
	if err != nil {
		t.Fatalf("template not created: %v", err)
	}
	env, err := os.ReadFile(ws.EnvPath())
	if err != nil {
		t.Fatalf("stack.env not seeded: %v", err)
	}
	if string(template) != string(env) {
		t.Error("stack.env should be seeded from the template")
	}
}

func TestPrepare_NeverOverwritesExistingEnv(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deploy")
	mgr := newTestWorkspaceManager(t, root, nil)

	ws, err := mgr.Prepare(context.Background(), ModeClean)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// Simulate the user setting credentials.
	userContent := "POSTGRES_PASSWORD=real-secret\n"
	if err := os.WriteFile(ws.EnvPath(), []byte(userContent), 0600); err != nil {
		t.Fatal(err)
	}

	for _, mode := range []Mode{ModeClean, ModePreserve} {
		if _, err := mgr.Prepare(context.Background(), mode); err != nil {
			t.Fatalf("Prepare(%v) error = %v", mode, err)
		}
		got, err := os.ReadFile(ws.EnvPath())
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != userContent {
			t.Fatalf("mode %v overwrote stack.env: %q", mode, got)
		}
	}
}

func TestPrepare_SeedMissingTemplateIsFatal(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deploy")
	mgr := newTestWorkspaceManager(t, root, nil)

	ws, err := mgr.Prepare(context.Background(), ModeClean)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// Root exists, but both the template and stack.env are gone.
	if err := os.Remove(ws.EnvTemplatePath()); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(ws.EnvPath()); err != nil {
		t.Fatal(err)
	}

	_, err = mgr.Prepare(context.Background(), ModeClean)
	if !errors.Is(err, ErrEnvironmentSeedMissing) {
		t.Fatalf("Prepare() error = %v, want ErrEnvironmentSeedMissing", err)
	}
}

func TestPrepare_CleanRemovesGeneratedArtifacts(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deploy")
	mgr := newTestWorkspaceManager(t, root, nil)

	ws, err := mgr.Prepare(context.Background(), ModeClean)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// Drop generated and user artifacts into the workspace.
	if err := os.WriteFile(ws.ManifestPath(), []byte("services: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(root, "config", "oldcomponent")
	if err := os.MkdirAll(stale, 0755); err != nil {
		t.Fatal(err)
	}
	userFile := filepath.Join(ws.StaticDir(), "notes.txt")
	if err := os.WriteFile(userFile, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Prepare(context.Background(), ModeClean); err != nil {
		t.Fatalf("second Prepare() error = %v", err)
	}

	if _, err := os.Stat(ws.ManifestPath()); !os.IsNotExist(err) {
		t.Error("clean mode should remove the previous manifest")
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("clean mode should remove stale config directories")
	}
	if _, err := os.Stat(userFile); err != nil {
		t.Errorf("clean mode must not touch static/: %v", err)
	}
}

func TestPrepare_PreserveKeepsArtifacts(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deploy")
	mgr := newTestWorkspaceManager(t, root, nil)

	ws, err := mgr.Prepare(context.Background(), ModeClean)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if err := os.WriteFile(ws.ManifestPath(), []byte("services: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Prepare(context.Background(), ModePreserve); err != nil {
		t.Fatalf("preserve Prepare() error = %v", err)
	}
	if _, err := os.Stat(ws.ManifestPath()); err != nil {
		t.Errorf("preserve mode removed the manifest: %v", err)
	}
}

func TestPrepare_CleanBacksUpManifest(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deploy")
	mock := &MockBackupManager{}
	mgr := newTestWorkspaceManager(t, root, mock)

	ws, err := mgr.Prepare(context.Background(), ModeClean)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(mock.BackedUp) != 0 {
		t.Fatal("first run has nothing to back up, backup manager should not run on a fresh root")
	}

	if err := os.WriteFile(ws.ManifestPath(), []byte("services: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Prepare(context.Background(), ModeClean); err != nil {
		t.Fatalf("second Prepare() error = %v", err)
	}

	if len(mock.BackedUp) != 1 || mock.BackedUp[0] != ws.ManifestPath() {
		t.Errorf("expected one backup of %s, got %v", ws.ManifestPath(), mock.BackedUp)
	}
}

func TestPrepare_BackupFailureIsFatal(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deploy")
	mock := &MockBackupManager{ReturnErr: errors.New("disk full")}
	mgr := newTestWorkspaceManager(t, root, mock)

	ws, err := mgr.Prepare(context.Background(), ModeClean)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if err := os.WriteFile(ws.ManifestPath(), []byte("services: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err = mgr.Prepare(context.Background(), ModeClean)
	if !errors.Is(err, ErrWorkspaceIO) {
		t.Fatalf("Prepare() error = %v, want ErrWorkspaceIO", err)
	}
}

func TestPrepare_CanceledContext(t *testing.T) {
	mgr := newTestWorkspaceManager(t, filepath.Join(t.TempDir(), "deploy"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mgr.Prepare(ctx, ModeClean); !errors.Is(err, context.Canceled) {
		t.Fatalf("Prepare() error = %v, want context.Canceled", err)
	}
}

func TestNewDefaultWorkspaceManager_NilChecks(t *testing.T) {
	if _, err := NewDefaultWorkspaceManager("", "p", nil, testLogger()); !errors.Is(err, ErrNilDependency) {
		t.Errorf("empty root: error = %v, want ErrNilDependency", err)
	}
	if _, err := NewDefaultWorkspaceManager("/tmp/x", "p", nil, nil); !errors.Is(err, ErrNilDependency) {
		t.Errorf("nil logger: error = %v, want ErrNilDependency", err)
	}
}
