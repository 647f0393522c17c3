// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_HasEightComponents(t *testing.T) {
	reg := Builtin()
	assert.Equal(t, 8, reg.Len())
}

func TestBuiltin_StableOrder(t *testing.T) {
	reg := Builtin()
	want := []ID{"core", "postgresql", "mongodb", "redis", "rabbitmq", "prometheus", "grafana", "portainer"}
	assert.Equal(t, want, reg.AllIDs())
}

func TestDescribe_KnownComponent(t *testing.T) {
	reg := Builtin()
	desc, err := reg.Describe("postgresql")
	require.NoError(t, err)
	assert.Contains(t, desc, "PostgreSQL")
}

func TestDescribe_UnknownComponent(t *testing.T) {
	reg := Builtin()
	_, err := reg.Describe("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownComponent))
	assert.Contains(t, err.Error(), "bogus")
}

func TestDependencyOf_GrafanaNeedsPrometheus(t *testing.T) {
	reg := Builtin()
	dep, err := reg.DependencyOf("grafana")
	require.NoError(t, err)
	assert.Equal(t, ID("prometheus"), dep)
}

func TestDependencyOf_NoDependency(t *testing.T) {
	reg := Builtin()
	for _, id := range []ID{"core", "postgresql", "mongodb", "redis", "rabbitmq", "prometheus", "portainer"} {
		dep, err := reg.DependencyOf(id)
		require.NoError(t, err)
		assert.Equal(t, ID(""), dep, "component %s should declare no dependency", id)
	}
}

func TestDependencyOf_UnknownComponent(t *testing.T) {
	reg := Builtin()
	_, err := reg.DependencyOf("nope")
	assert.True(t, errors.Is(err, ErrUnknownComponent))
}

func TestContains(t *testing.T) {
	reg := Builtin()
	assert.True(t, reg.Contains("redis"))
	assert.False(t, reg.Contains("etcd"))
}

func TestNew_DuplicateKeepsFirst(t *testing.T) {
	reg := New(
		Descriptor{ID: "a", Description: "first"},
		Descriptor{ID: "a", Description: "second"},
	)
	assert.Equal(t, 1, reg.Len())
	desc, err := reg.Describe("a")
	require.NoError(t, err)
	assert.Equal(t, "first", desc)
}

func TestAllIDs_ReturnsCopy(t *testing.T) {
	reg := Builtin()
	ids := reg.AllIDs()
	ids[0] = "mutated"
	assert.Equal(t, ID("core"), reg.AllIDs()[0])
}
