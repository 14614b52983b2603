package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsflash-io/dsflash/internal/ccxml"
)

// Session is the resolved bundle addressing one target for one call. It is
// built fresh per top-level operation and immutable once built.
type Session struct {
	ConfigPath string
	Chip       string
	Timeout    time.Duration
	Debug      bool
	Attach     bool
	Workspace  string
}

// Builder resolves session configs into dispatchable sessions.
type Builder struct {
	Resolver *Resolver
	DB       DeviceDB
	// WorkspaceRoot is where attach-session workspaces are created.
	WorkspaceRoot string
}

// Build resolves the artifact, fills the chip from the device database when
// no override is given, and derives the attach workspace from the artifact's
// base name. The artifact must carry both a device type and a connection
// type; a hole in either is terminal, never defaulted.
func (b *Builder) Build(cfg SessionConfig) (Session, error) {
	path, err := b.Resolver.Resolve(cfg)
	if err != nil {
		return Session{}, err
	}

	artifact, err := ccxml.Load(path)
	if err != nil {
		return Session{}, err
	}
	devicetype, err := artifact.DeviceType()
	if err != nil {
		return Session{}, fmt.Errorf("unresolved device type: %w", err)
	}
	if _, err := artifact.Connection(); err != nil {
		return Session{}, fmt.Errorf("unresolved connection type: %w", err)
	}

	chip := cfg.Chip
	if chip == "" {
		deviceXML, err := b.DB.DeviceXML(devicetype)
		if err != nil {
			return Session{}, fmt.Errorf("deriving chip for %s: %w", devicetype, err)
		}
		chip, err = b.DB.CPU(deviceXML)
		if err != nil {
			return Session{}, fmt.Errorf("deriving chip for %s: %w", devicetype, err)
		}
	}

	s := Session{
		ConfigPath: path,
		Chip:       chip,
		Timeout:    time.Duration(cfg.Timeout * float64(time.Second)),
		Debug:      cfg.Debug,
		Attach:     cfg.Attach,
	}
	if cfg.Attach {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.Workspace = filepath.Join(b.WorkspaceRoot, base)
	}
	return s, nil
}
