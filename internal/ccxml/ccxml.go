// Package ccxml locates and reads CCS target-configuration (.ccxml) files.
//
// A ccxml file binds a device identity to a device type and a debug-probe
// connection. The files live in a canonical per-user cache directory and are
// keyed by serial number or device type; dsflash never edits one in place,
// it only reads fields out and regenerates whole files through the engine.
package ccxml

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// Ext is the artifact file extension.
const Ext = ".ccxml"

// serialPropertyID is the property id CCS uses for the probe serial number.
const serialPropertyID = "-- Enter the serial number"

// DefaultDir returns the canonical per-user directory where target
// configurations are cached (~/ti/CCSTargetConfigurations).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, "ti", "CCSTargetConfigurations"), nil
}

// PathFor returns the canonical artifact path for an identity key (serial
// number or device type) under dir.
func PathFor(dir, key string) string {
	return filepath.Join(dir, key+Ext)
}

type document struct {
	XMLName     xml.Name     `xml:"configurations"`
	Connections []connection `xml:"configuration>connection"`
}

type connection struct {
	ID         string     `xml:"id,attr"`
	Properties []property `xml:"property"`
	Instances  []instance `xml:"platform>instance"`
}

type property struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"Value,attr"`
}

type instance struct {
	ID      string `xml:"id,attr"`
	XMLPath string `xml:"xmlpath,attr"`
}

// Config is a loaded target-configuration file.
type Config struct {
	path string
	doc  document
}

// Load reads and decodes the ccxml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading target configuration: %w", err)
	}
	c := &Config{path: path}
	if err := xml.Unmarshal(data, &c.doc); err != nil {
		return nil, fmt.Errorf("decoding target configuration %s: %w", path, err)
	}
	return c, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// DeviceType returns the configured device type.
func (c *Config) DeviceType() (string, error) {
	for _, conn := range c.doc.Connections {
		for _, inst := range conn.Instances {
			if inst.XMLPath == "devices" && inst.ID != "" {
				return inst.ID, nil
			}
		}
	}
	return "", fmt.Errorf("no device in target configuration %s", c.path)
}

// Connection returns the configured connection (debug probe) type.
func (c *Config) Connection() (string, error) {
	for _, conn := range c.doc.Connections {
		if conn.ID != "" {
			return conn.ID, nil
		}
	}
	return "", fmt.Errorf("no connection in target configuration %s", c.path)
}

// Serial returns the configured probe serial number. Devices without serial
// numbers legitimately omit it, so absence is reported, not an error.
func (c *Config) Serial() (string, bool) {
	for _, conn := range c.doc.Connections {
		for _, prop := range conn.Properties {
			if prop.ID == serialPropertyID && prop.Value != "" {
				return prop.Value, true
			}
		}
	}
	return "", false
}
