// Package devicedb answers device and connection capability queries against
// the target database shipped inside a CCS installation
// (ccs_base/common/targetdb). Device files are scanned with a streaming
// decoder; the trees are large and we only ever need a handful of attributes.
package devicedb

import (
	_ "embed"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed boards.json
var boardsJSON []byte

// targetDB is the database location relative to an installation root.
const targetDB = "ccs_base/common/targetdb"

// DB resolves capability queries for one installation.
type DB struct {
	root   string
	boards map[string]string
}

// New returns a DB over the installation at root.
func New(root string) *DB {
	db := &DB{root: root}
	if err := json.Unmarshal(boardsJSON, &db.boards); err != nil {
		// The table is compiled in; a decode failure is a build defect.
		panic(fmt.Sprintf("devicedb: bad embedded board table: %v", err))
	}
	return db
}

func (db *DB) devicesDir() string {
	return filepath.Join(db.root, filepath.FromSlash(targetDB), "devices")
}

func (db *DB) connectionsDir() string {
	return filepath.Join(db.root, filepath.FromSlash(targetDB), "connections")
}

// DeviceXML returns the path of the device definition for devicetype.
func (db *DB) DeviceXML(devicetype string) (string, error) {
	dir := db.devicesDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading device database: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		id, partnum, err := deviceAttrs(path)
		if err != nil {
			continue
		}
		if strings.EqualFold(id, devicetype) || strings.EqualFold(partnum, devicetype) {
			return path, nil
		}
	}
	return "", fmt.Errorf("no device definition for %q", devicetype)
}

// DeviceTypeFromSerial maps a probe serial number to a device type via the
// board-identifier table (the first four serial characters identify the
// board).
func (db *DB) DeviceTypeFromSerial(serial string) (string, error) {
	if len(serial) < 4 {
		return "", fmt.Errorf("serial number %q too short for a board id", serial)
	}
	board := strings.ToUpper(serial[:4])
	devicetype, ok := db.boards[board]
	if !ok {
		return "", fmt.Errorf("no known device for board id %q", board)
	}
	return devicetype, nil
}

// CPU returns the name of the first CPU declared in a device definition.
func (db *DB) CPU(deviceXML string) (string, error) {
	cpu, _, err := scanDevice(deviceXML)
	if err != nil {
		return "", err
	}
	if cpu == "" {
		return "", fmt.Errorf("no cpu declared in %s", deviceXML)
	}
	return cpu, nil
}

// DefaultConnection resolves a device definition's declared default
// connection to its display name.
func (db *DB) DefaultConnection(deviceXML string) (string, error) {
	_, connFile, err := scanDevice(deviceXML)
	if err != nil {
		return "", err
	}
	if connFile == "" {
		return "", fmt.Errorf("no default connection declared in %s", deviceXML)
	}
	return db.ConnectionName(filepath.Join(db.connectionsDir(), connFile))
}

// ConnectionName returns the display name of a connection definition.
func (db *DB) ConnectionName(connectionXML string) (string, error) {
	f, err := os.Open(connectionXML)
	if err != nil {
		return "", fmt.Errorf("reading connection definition: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("no connection declared in %s", connectionXML)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "connection" {
			if id := attr(start, "id"); id != "" {
				return id, nil
			}
		}
	}
}

// deviceAttrs reads the id and partnum attributes off the root device
// element without decoding the rest of the file.
func deviceAttrs(path string) (id, partnum string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", "", fmt.Errorf("no device element in %s", path)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "device" {
			return attr(start, "id"), attr(start, "partnum"), nil
		}
	}
}

// scanDevice walks a device definition for the first cpu id and the
// DefaultConnection property. CPUs nest at arbitrary depth under routers and
// subpaths, so this is a token scan rather than a struct decode.
func scanDevice(path string) (cpu, defaultConnection string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("reading device definition: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "cpu":
			if cpu == "" {
				cpu = attr(start, "id")
			}
		case "property":
			if attr(start, "id") == "DefaultConnection" {
				defaultConnection = attr(start, "Value")
			}
		}
	}
	return cpu, defaultConnection, nil
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
