// Package ccs locates Code Composer Studio installations and the per-user
// workspace root used for attach sessions.
package ccs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNotFound is returned when no usable CCS installation can be located.
var ErrNotFound = errors.New("ccs installation not found")

// Resolve turns an installation spec into an installation root. The spec is
// either an explicit path (which must exist) or a version constraint such as
// "12", ">=10.4" or "" (highest installed).
func Resolve(spec string) (string, error) {
	if looksLikePath(spec) {
		if _, err := os.Stat(spec); err != nil {
			return "", fmt.Errorf("%w: invalid path to ccs installation: %s", ErrNotFound, spec)
		}
		return spec, nil
	}
	return Find(spec)
}

func looksLikePath(spec string) bool {
	return spec != "" && (filepath.IsAbs(spec) || strings.ContainsAny(spec, `/\`))
}

// Find scans the conventional install roots for ccs* directories and returns
// the highest installed version satisfying the constraint. An empty
// constraint matches every installation.
func Find(constraint string) (string, error) {
	return findIn(installRoots(), constraint)
}

func installRoots() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "ti"))
	}
	if runtime.GOOS == "windows" {
		roots = append(roots, `C:\ti`)
	} else {
		roots = append(roots, "/opt/ti")
	}
	return roots
}

type installation struct {
	path    string
	version *semver.Version
}

func findIn(roots []string, constraint string) (string, error) {
	var c *semver.Constraints
	if constraint != "" {
		parsed, err := semver.NewConstraint(constraint)
		if err != nil {
			return "", fmt.Errorf("invalid ccs version constraint %q: %w", constraint, err)
		}
		c = parsed
	}

	var found []installation
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			v, ok := parseVersion(entry.Name())
			if !ok {
				continue
			}
			if c != nil && !c.Check(v) {
				continue
			}
			found = append(found, installation{
				path:    installPath(filepath.Join(root, entry.Name())),
				version: v,
			})
		}
	}
	if len(found) == 0 {
		if constraint != "" {
			return "", fmt.Errorf("%w: no installation matching %q", ErrNotFound, constraint)
		}
		return "", ErrNotFound
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].version.LessThan(found[j].version)
	})
	return found[len(found)-1].path, nil
}

// installPath resolves the installation root inside a versioned directory.
// Newer releases nest the tree one level down (e.g. ti/ccs1210/ccs).
func installPath(dir string) string {
	nested := filepath.Join(dir, "ccs")
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		return nested
	}
	return dir
}

// parseVersion extracts a version from a ccs directory name. Both dotted
// names (ccs12.1.0) and the compact release convention (ccs1210 meaning
// 12.1.0, ccs920 meaning 9.2.0) are understood.
func parseVersion(name string) (*semver.Version, bool) {
	if !strings.HasPrefix(strings.ToLower(name), "ccs") {
		return nil, false
	}
	raw := name[len("ccs"):]
	if raw == "" {
		return nil, false
	}
	if strings.Contains(raw, ".") {
		v, err := semver.NewVersion(strings.Trim(raw, "-_"))
		return v, err == nil
	}
	if len(raw) < 3 || strings.TrimLeft(raw, "0123456789") != "" {
		return nil, false
	}
	// Compact form: last digit is patch, next is minor, the rest major.
	dotted := fmt.Sprintf("%s.%c.%c", raw[:len(raw)-2], raw[len(raw)-2], raw[len(raw)-1])
	v, err := semver.NewVersion(dotted)
	return v, err == nil
}

// WorkspaceRoot returns the directory under which attach-session workspaces
// are created.
func WorkspaceRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".dsflash", "workspaces"), nil
}
