package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsflash-io/dsflash/internal/ccs"
	"github.com/dsflash-io/dsflash/internal/ccxml"
	"github.com/dsflash-io/dsflash/internal/core"
	"github.com/dsflash-io/dsflash/internal/devicedb"
	"github.com/dsflash-io/dsflash/internal/dss"
)

// sessionConfig assembles the immutable session config from the persistent
// flags.
func sessionConfig() core.SessionConfig {
	return core.SessionConfig{
		CCXML:      flagCCXML,
		Serial:     flagSerial,
		DeviceType: flagDeviceType,
		Connection: flagConnection,
		Chip:       flagChip,
		Timeout:    flagTimeout,
		Debug:      flagDebug,
		Fresh:      flagFresh,
		Attach:     flagAttach,
	}
}

// newExecutor wires the full pipeline for one invocation: installation
// discovery, engine executable, artifact cache, device database, resolver,
// builder, executor.
func newExecutor() (*core.Executor, error) {
	install, err := ccs.Resolve(flagCCS)
	if err != nil {
		return nil, err
	}
	exe, err := dss.FindExecutable(install)
	if err != nil {
		return nil, err
	}
	configDir, err := ccxml.DefaultDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating configuration cache: %w", err)
	}
	workspaceRoot, err := ccs.WorkspaceRoot()
	if err != nil {
		return nil, err
	}

	db := devicedb.New(install)
	bridge := dss.ExecBridge{}
	gen := &core.ConfigGenerator{DB: db, Bridge: bridge, Exe: exe, ConfigDir: configDir}
	builder := &core.Builder{
		Resolver:      &core.Resolver{ConfigDir: configDir, Gen: gen},
		DB:            db,
		WorkspaceRoot: workspaceRoot,
	}
	return &core.Executor{Exe: exe, Bridge: bridge, Builder: builder}, nil
}

// parseOptionFlags turns repeated --option id=val flags into an option map.
func parseOptionFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	options := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, val, ok := strings.Cut(pair, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid option %q, expected id=value", pair)
		}
		options[id] = val
	}
	return options, nil
}

// parseAddress parses a memory address in any base strconv understands.
func parseAddress(s string) (uint32, error) {
	addr, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(addr), nil
}

// reportOutcome prints an operation verdict and maps failure to a non-zero
// exit through the returned error.
func reportOutcome(name string, ok bool) error {
	if !ok {
		return fmt.Errorf("%s failed", name)
	}
	fmt.Printf("%s succeeded\n", name)
	return nil
}
