package dss

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutablePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("root", "eclipse", "eclipsec.exe"),
		executablePath("root", "windows"))
	assert.Equal(t,
		filepath.Join("root", "eclipse", "eclipsec"),
		executablePath("root", "linux"))
	assert.Equal(t,
		filepath.Join("root", "eclipse", "Ccstudio.app", "Contents", "MacOS", "ccstudio"),
		executablePath("root", "darwin"))
}

func TestFindExecutable(t *testing.T) {
	root := t.TempDir()
	exe := executablePath(root, runtime.GOOS)
	require.NoError(t, os.MkdirAll(filepath.Dir(exe), 0o755))
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	found, err := FindExecutable(root)
	require.NoError(t, err)
	assert.Equal(t, exe, found)
}

func TestFindExecutable_Missing(t *testing.T) {
	_, err := FindExecutable(t.TempDir())
	assert.Error(t, err)
}
