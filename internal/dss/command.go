package dss

import (
	"strconv"
	"strings"
	"time"
)

// engineScript is the Rhino script the runScript application executes; it
// interprets the --operation sequence of a batch.
const engineScript = "dsflash.js"

// Operation names understood by the engine script.
const (
	OpCreateConfig    = "createConfig"
	OpGetConnections  = "getConnections"
	OpGetDeviceTypes  = "getDeviceTypes"
	OpGetCPUs         = "getCPUs"
	OpListOptions     = "listOptions"
	OpGetOption       = "getOption"
	OpSetOption       = "setOption"
	OpReset           = "reset"
	OpErase           = "erase"
	OpFlash           = "flash"
	OpVerify          = "verify"
	OpMemoryRead      = "memoryRead"
	OpMemoryWrite     = "memoryWrite"
	OpEvaluate        = "evaluate"
	OpNop             = "nop"
	OpXDS110Reset     = "xds110Reset"
	OpXDS110List      = "xds110List"
	OpXDS110Upgrade   = "xds110Upgrade"
)

// Command is one operation in an engine batch: an operation name plus its
// ordered operands.
type Command struct {
	Operation string
	Args      []string
}

// Cmd builds a Command.
func Cmd(operation string, args ...string) Command {
	return Command{Operation: operation, Args: args}
}

// Binding ties a batch to a target configuration. The zero value dispatches
// sessionless operations (database listings, probe enumeration).
type Binding struct {
	ConfigPath string
	Chip       string
	Timeout    time.Duration
	Debug      bool
	Workspace  string
}

// BatchArgs flattens session bindings and commands into the argument vector
// understood by the engine's runScript application. The whole batch goes out
// in a single invocation; the engine executes the operations in order.
func BatchArgs(b Binding, cmds ...Command) []string {
	args := []string{
		"-noSplash",
		"-application", "com.ti.ccstudio.apps.runScript",
		"-product", "com.ti.ccstudio.branding",
	}
	if b.Workspace != "" {
		args = append(args, "-data", b.Workspace)
	}

	script := []string{engineScript}
	if b.ConfigPath != "" {
		script = append(script, "--config", b.ConfigPath)
	}
	if b.Chip != "" {
		script = append(script, "--chip", b.Chip)
	}
	if b.Timeout > 0 {
		script = append(script, "--timeout", strconv.FormatFloat(b.Timeout.Seconds(), 'f', -1, 64))
	}
	if b.Debug {
		script = append(script, "--debug")
	}
	for _, c := range cmds {
		script = append(script, "--operation", c.Operation)
		script = append(script, c.Args...)
	}

	return append(args, "-dss.rhinoArgs", strings.Join(script, " "))
}
