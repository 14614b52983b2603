package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsflash-io/dsflash/internal/ccxml"
)

func newBuilder(t *testing.T) *Builder {
	dir := t.TempDir()
	return &Builder{
		Resolver: &Resolver{ConfigDir: dir, Gen: &fakeGen{t: t, dir: dir}},
		DB: &fakeDB{
			cpu:               "Cortex_M3_0",
			defaultConnection: "XDS110",
		},
		WorkspaceRoot: filepath.Join(dir, "workspaces"),
	}
}

func TestBuild_ChipOverride(t *testing.T) {
	b := newBuilder(t)
	path := ccxml.PathFor(b.Resolver.ConfigDir, "SN1")
	writeArtifact(t, path, "DeviceA", "XDS110", "SN1")

	s, err := b.Build(SessionConfig{Serial: "SN1", Chip: "CustomCPU", Timeout: 2.5, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, path, s.ConfigPath)
	assert.Equal(t, "CustomCPU", s.Chip)
	assert.Equal(t, 2500*time.Millisecond, s.Timeout)
	assert.True(t, s.Debug)
	assert.False(t, s.Attach)
	assert.Empty(t, s.Workspace)
}

func TestBuild_DerivesChipFromDeviceType(t *testing.T) {
	b := newBuilder(t)
	writeArtifact(t, ccxml.PathFor(b.Resolver.ConfigDir, "SN1"), "DeviceA", "XDS110", "SN1")

	s, err := b.Build(SessionConfig{Serial: "SN1"})
	require.NoError(t, err)
	assert.Equal(t, "Cortex_M3_0", s.Chip)
}

func TestBuild_AttachWorkspace(t *testing.T) {
	b := newBuilder(t)
	writeArtifact(t, ccxml.PathFor(b.Resolver.ConfigDir, "SN1"), "DeviceA", "XDS110", "SN1")

	s, err := b.Build(SessionConfig{Serial: "SN1", Attach: true})
	require.NoError(t, err)
	assert.True(t, s.Attach)
	// Workspace is the artifact's base name without extension.
	assert.Equal(t, filepath.Join(b.WorkspaceRoot, "SN1"), s.Workspace)
}

func TestBuild_UnresolvedDeviceIsTerminal(t *testing.T) {
	b := newBuilder(t)
	path := filepath.Join(t.TempDir(), "broken.ccxml")
	content := `<configurations><configuration></configuration></configurations>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := b.Build(SessionConfig{CCXML: path})
	assert.Error(t, err)
}
