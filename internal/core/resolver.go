package core

import (
	"fmt"
	"os"

	"github.com/dsflash-io/dsflash/internal/ccxml"
	"github.com/dsflash-io/dsflash/internal/logging"
)

// Generator produces a new configuration artifact for an identity and
// returns its path. The production implementation delegates materialization
// to the engine; tests substitute one that writes files directly.
type Generator interface {
	Generate(serial, devicetype, connection string) (string, error)
}

// Resolver turns caller-supplied identity fragments into one canonical
// configuration artifact path. Resolution itself never spawns the engine;
// only regeneration (through the Generator) does.
type Resolver struct {
	// ConfigDir is the artifact cache directory.
	ConfigDir string
	// Gen regenerates artifacts on cache miss or identity conflict.
	Gen Generator
}

// Resolve applies the regeneration policy:
//
//  1. An explicit CCXML path must exist and becomes the candidate.
//  2. Otherwise the cache is probed by serial number, then device type.
//  3. Any caller-supplied field that disagrees with the candidate's
//     extracted fields forces regeneration. Artifacts are compared by
//     value, never patched in place.
//  4. With Fresh set, or without a candidate, the Generator runs and its
//     artifact wins; otherwise the candidate path is returned unchanged.
func (r *Resolver) Resolve(cfg SessionConfig) (string, error) {
	var path string
	switch {
	case cfg.CCXML != "":
		if _, err := os.Stat(cfg.CCXML); err != nil {
			return "", fmt.Errorf("%w: could not find ccxml: %s", ErrConfigNotFound, cfg.CCXML)
		}
		path = cfg.CCXML
	case cfg.Serial != "":
		path = r.cached(cfg.Serial)
	case cfg.DeviceType != "":
		path = r.cached(cfg.DeviceType)
	}

	fresh := cfg.Fresh
	if path != "" {
		conflict, err := r.conflicts(path, cfg)
		if err != nil {
			return "", err
		}
		if conflict {
			logging.Debug("cached artifact disagrees with requested identity", "path", path)
			fresh = true
		}
	}

	if fresh || path == "" {
		return r.Gen.Generate(cfg.Serial, cfg.DeviceType, cfg.Connection)
	}
	return path, nil
}

// cached returns the canonical cache path for an identity key if it exists.
func (r *Resolver) cached(key string) string {
	path := ccxml.PathFor(r.ConfigDir, key)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// conflicts reports whether any caller-supplied identity field disagrees
// with the candidate artifact's contents.
func (r *Resolver) conflicts(path string, cfg SessionConfig) (bool, error) {
	c, err := ccxml.Load(path)
	if err != nil {
		return false, err
	}
	devicetype, err := c.DeviceType()
	if err != nil {
		return false, err
	}
	connection, err := c.Connection()
	if err != nil {
		return false, err
	}

	if cfg.DeviceType != "" && cfg.DeviceType != devicetype {
		return true, nil
	}
	if cfg.Connection != "" && cfg.Connection != connection {
		return true, nil
	}
	// Serial absence is legitimate (some devices have none); a caller
	// supplying one then still conflicts with an artifact carrying none.
	serial, ok := c.Serial()
	if cfg.Serial != "" && (!ok || cfg.Serial != serial) {
		return true, nil
	}
	return false, nil
}
