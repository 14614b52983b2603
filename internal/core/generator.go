package core

import (
	"fmt"

	"github.com/dsflash-io/dsflash/internal/ccxml"
	"github.com/dsflash-io/dsflash/internal/dss"
	"github.com/dsflash-io/dsflash/internal/logging"
)

// DeviceDB answers capability queries against the installation's device and
// connection databases.
type DeviceDB interface {
	DeviceXML(devicetype string) (string, error)
	DeviceTypeFromSerial(serial string) (string, error)
	CPU(deviceXML string) (string, error)
	DefaultConnection(deviceXML string) (string, error)
}

// ConfigGenerator synthesizes configuration artifacts. Missing identity
// fields are derived from the device database; the artifact itself is
// materialized by the engine at the canonical identity path.
type ConfigGenerator struct {
	DB        DeviceDB
	Bridge    dss.Bridge
	Exe       string
	ConfigDir string
}

// Generate resolves the identity to a full (devicetype, connection, serial)
// triple and has the engine write the artifact. At least one of serial or
// devicetype must be supplied.
func (g *ConfigGenerator) Generate(serial, devicetype, connection string) (string, error) {
	var deviceXML string
	var err error

	switch {
	case devicetype != "":
		deviceXML, err = g.DB.DeviceXML(devicetype)
	case serial != "":
		devicetype, err = g.DB.DeviceTypeFromSerial(serial)
		if err == nil {
			deviceXML, err = g.DB.DeviceXML(devicetype)
		}
	default:
		return "", fmt.Errorf("%w: could not determine devicetype to use", ErrConfigAmbiguous)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigAmbiguous, err)
	}

	if connection == "" {
		connection, err = g.DB.DefaultConnection(deviceXML)
		if err != nil {
			return "", fmt.Errorf("%w: could not determine connection type to use", ErrConfigAmbiguous)
		}
	}

	key := serial
	if key == "" {
		key = devicetype
	}
	out := ccxml.PathFor(g.ConfigDir, key)

	logging.Debug("generating target configuration",
		"devicetype", devicetype, "connection", connection, "path", out)

	args := []string{connection, devicetype, out}
	if serial != "" {
		args = append(args, serial)
	}
	res := g.Bridge.Call(g.Exe, dss.BatchArgs(dss.Binding{}, dss.Cmd(dss.OpCreateConfig, args...)), 0)
	if res.TimedOut {
		return "", fmt.Errorf("%w: %s", dss.ErrTimeout, res.Output)
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", dss.ErrProcess, res.Output)
	}
	return out, nil
}
