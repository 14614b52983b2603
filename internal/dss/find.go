package dss

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// FindExecutable returns the engine executable under an installation root,
// or an error if the installation carries none.
func FindExecutable(root string) (string, error) {
	path := executablePath(root, runtime.GOOS)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no engine executable under %s: %w", root, err)
	}
	return path, nil
}

// executablePath maps an installation root to the platform's engine binary.
// Windows and Linux use the eclipse launcher; macOS ships an app bundle.
func executablePath(root, goos string) string {
	switch goos {
	case "windows":
		return filepath.Join(root, "eclipse", "eclipsec.exe")
	case "darwin":
		return filepath.Join(root, "eclipse", "Ccstudio.app", "Contents", "MacOS", "ccstudio")
	default:
		return filepath.Join(root, "eclipse", "eclipsec")
	}
}
