package core

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dsflash-io/dsflash/internal/dss"
	"github.com/dsflash-io/dsflash/internal/logging"
)

// Executor presents the full operation surface against one installation.
// Every top-level call builds a fresh session, composes one engine batch,
// and blocks until the engine exits or its timeout fires. There is no retry;
// callers needing one loop externally.
type Executor struct {
	Exe     string
	Bridge  dss.Bridge
	Builder *Builder
}

func binding(s Session) dss.Binding {
	return dss.Binding{
		ConfigPath: s.ConfigPath,
		Chip:       s.Chip,
		Timeout:    s.Timeout,
		Debug:      s.Debug,
		Workspace:  s.Workspace,
	}
}

// run submits one batch. Timeouts surface as ErrTimeout; engine-reported
// failure is left in the Result for the caller to classify.
func (e *Executor) run(b dss.Binding, cmds ...dss.Command) (dss.Result, error) {
	logging.Debug("engine batch", "operations", len(cmds), "config", b.ConfigPath)
	res := e.Bridge.Call(e.Exe, dss.BatchArgs(b, cmds...), b.Timeout)
	if res.TimedOut {
		return res, fmt.Errorf("%w: %s", dss.ErrTimeout, res.Output)
	}
	return res, nil
}

// output submits one batch whose textual output is the operation's result,
// so an engine-reported failure is an error.
func (e *Executor) output(b dss.Binding, cmds ...dss.Command) (string, error) {
	res, err := e.run(b, cmds...)
	if err != nil {
		return "", err
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", dss.ErrProcess, res.Output)
	}
	return res.Output, nil
}

// session builds the per-call session for cfg.
func (e *Executor) session(cfg SessionConfig) (dss.Binding, error) {
	s, err := e.Builder.Build(cfg)
	if err != nil {
		return dss.Binding{}, err
	}
	return binding(s), nil
}

// listing runs a sessionless database listing and applies the substring
// search after the engine call.
func (e *Executor) listing(op, search string) ([]string, error) {
	out, err := e.output(dss.Binding{}, dss.Cmd(op))
	if err != nil {
		return nil, err
	}
	lines := dss.ParseLines(out)
	if search == "" {
		return lines, nil
	}
	filtered := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, search) {
			filtered = append(filtered, line)
		}
	}
	return filtered, nil
}

// Connections lists the connection types the installation knows, optionally
// filtered by substring.
func (e *Executor) Connections(search string) ([]string, error) {
	return e.listing(dss.OpGetConnections, search)
}

// DeviceTypes lists the device types the installation knows, optionally
// filtered by substring.
func (e *Executor) DeviceTypes(search string) ([]string, error) {
	return e.listing(dss.OpGetDeviceTypes, search)
}

// CPUs lists the CPUs the installation knows, optionally filtered by
// substring.
func (e *Executor) CPUs(search string) ([]string, error) {
	return e.listing(dss.OpGetCPUs, search)
}

// ListOptions returns the session device's option namespace, optionally
// restricted to ids containing filter.
func (e *Executor) ListOptions(cfg SessionConfig, filter string) ([]dss.Option, error) {
	b, err := e.session(cfg)
	if err != nil {
		return nil, err
	}
	cmd := dss.Cmd(dss.OpListOptions)
	if filter != "" {
		cmd = dss.Cmd(dss.OpListOptions, filter)
	}
	out, err := e.output(b, cmd)
	if err != nil {
		return nil, err
	}
	return dss.ParseOptions(out)
}

// PrintOptions writes the session device's option listing to w.
func (e *Executor) PrintOptions(w io.Writer, cfg SessionConfig, filter string) error {
	opts, err := e.ListOptions(cfg, filter)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		if opt.Description != "" {
			fmt.Fprintf(w, "%s = %s\n    %s\n", opt.ID, opt.Value, opt.Description)
		} else {
			fmt.Fprintf(w, "%s = %s\n", opt.ID, opt.Value)
		}
	}
	return nil
}

// GetOption reads the raw value of a device option, optionally running
// preOperation first in the same batch (some options are only readable
// after, say, a halt).
func (e *Executor) GetOption(cfg SessionConfig, optionID, preOperation string) (string, error) {
	b, err := e.session(cfg)
	if err != nil {
		return "", err
	}
	var cmds []dss.Command
	if preOperation != "" {
		cmds = append(cmds, dss.Cmd(preOperation))
	}
	cmds = append(cmds, dss.Cmd(dss.OpGetOption, optionID))

	res, err := e.run(b, cmds...)
	if err != nil {
		return "", err
	}
	if !res.Success {
		if strings.Contains(res.Output, "unknown option") {
			return "", fmt.Errorf("%w: %s", ErrOptionNotFound, optionID)
		}
		return "", fmt.Errorf("%w: %s", dss.ErrProcess, res.Output)
	}
	return strings.TrimSpace(res.Output), nil
}

// GetBoolOption reads a device option and parses it as a boolean.
func (e *Executor) GetBoolOption(cfg SessionConfig, optionID, preOperation string) (bool, error) {
	val, err := e.GetOption(cfg, optionID, preOperation)
	if err != nil {
		return false, err
	}
	return dss.ParseBool(val)
}

// GetFloatOption reads a device option and parses it as a float.
func (e *Executor) GetFloatOption(cfg SessionConfig, optionID, preOperation string) (float64, error) {
	val, err := e.GetOption(cfg, optionID, preOperation)
	if err != nil {
		return 0, err
	}
	return dss.ParseFloat(val)
}

// setOptionCmds serializes an option map into setOption commands in stable
// (sorted) order, to run ahead of a primary action.
func setOptionCmds(options map[string]string) []dss.Command {
	ids := make([]string, 0, len(options))
	for id := range options {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cmds := make([]dss.Command, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, dss.Cmd(dss.OpSetOption, id, options[id]))
	}
	return cmds
}

// action dispatches a boolean-result operation, applying options first. The
// engine's reported outcome is the return value; only process-level trouble
// is an error.
func (e *Executor) action(cfg SessionConfig, options map[string]string, cmd dss.Command) (bool, error) {
	b, err := e.session(cfg)
	if err != nil {
		return false, err
	}
	cmds := append(setOptionCmds(options), cmd)
	res, err := e.run(b, cmds...)
	if err != nil {
		return false, err
	}
	return res.Success, nil
}

// Reset performs a board reset.
func (e *Executor) Reset(cfg SessionConfig, options map[string]string) (bool, error) {
	return e.action(cfg, options, dss.Cmd(dss.OpReset))
}

// Erase erases the device.
func (e *Executor) Erase(cfg SessionConfig, options map[string]string) (bool, error) {
	return e.action(cfg, options, dss.Cmd(dss.OpErase))
}

// imageCmd composes a flash/verify command for an image. Address is passed
// through to the engine verbatim when non-empty.
func imageCmd(op, image string, bin bool, address string) dss.Command {
	args := []string{image}
	if bin {
		args = append(args, "--binary")
	}
	if address != "" {
		args = append(args, "--address", address)
	}
	return dss.Cmd(op, args...)
}

// Flash programs an image onto the device.
func (e *Executor) Flash(cfg SessionConfig, image string, bin bool, address string, options map[string]string) (bool, error) {
	return e.action(cfg, options, imageCmd(dss.OpFlash, image, bin, address))
}

// Verify checks the device contents against an image.
func (e *Executor) Verify(cfg SessionConfig, image string, bin bool, address string, options map[string]string) (bool, error) {
	return e.action(cfg, options, imageCmd(dss.OpVerify, image, bin, address))
}

// MemoryRead reads numBytes bytes from the given address and page.
func (e *Executor) MemoryRead(cfg SessionConfig, address uint32, numBytes, page int) ([]byte, error) {
	b, err := e.session(cfg)
	if err != nil {
		return nil, err
	}
	out, err := e.output(b, dss.Cmd(dss.OpMemoryRead,
		fmt.Sprintf("%#x", address), strconv.Itoa(numBytes), strconv.Itoa(page)))
	if err != nil {
		return nil, err
	}
	return dss.ParseBytes(out)
}

// MemoryWrite writes data to the given address and page.
func (e *Executor) MemoryWrite(cfg SessionConfig, address uint32, data []byte, page int) error {
	b, err := e.session(cfg)
	if err != nil {
		return err
	}
	args := []string{fmt.Sprintf("%#x", address), strconv.Itoa(page)}
	for _, d := range data {
		args = append(args, fmt.Sprintf("%#x", d))
	}
	_, err = e.output(b, dss.Cmd(dss.OpMemoryWrite, args...))
	return err
}

// Evaluate evaluates a C/GEL expression, optionally loading a symbol file
// first, and returns the engine's textual result.
func (e *Executor) Evaluate(cfg SessionConfig, expr, symbolFile string) (string, error) {
	b, err := e.session(cfg)
	if err != nil {
		return "", err
	}
	args := []string{expr}
	if symbolFile != "" {
		args = append(args, "--symbols", symbolFile)
	}
	out, err := e.output(b, dss.Cmd(dss.OpEvaluate, args...))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Nop opens a session and performs no operation; useful for validating a
// configuration or, with Attach set, leaving a debugger attached.
func (e *Executor) Nop(cfg SessionConfig) error {
	b, err := e.session(cfg)
	if err != nil {
		return err
	}
	_, err = e.output(b, dss.Cmd(dss.OpNop))
	return err
}

// Attach opens a session and attaches the debugger to the device.
func (e *Executor) Attach(cfg SessionConfig) error {
	cfg.Attach = true
	return e.Nop(cfg)
}

// XDS110Reset resets the XDS110 probe identified by the session's serial
// number.
func (e *Executor) XDS110Reset(cfg SessionConfig) (bool, error) {
	if cfg.Serial == "" {
		return false, fmt.Errorf("xds110 reset requires a serial number")
	}
	return e.xds110(cfg, dss.Cmd(dss.OpXDS110Reset, cfg.Serial))
}

// XDS110List enumerates the serial numbers of connected XDS110 probes. The
// enumeration is sessionless; no target configuration is involved.
func (e *Executor) XDS110List() ([]string, error) {
	res, err := e.run(dss.Binding{}, dss.Cmd(dss.OpXDS110List))
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("%w: %s", ErrHardware, res.Output)
	}
	return dss.ParseLines(res.Output), nil
}

// XDS110Upgrade reflashes the XDS110 probe firmware.
func (e *Executor) XDS110Upgrade(cfg SessionConfig) (bool, error) {
	return e.xds110(cfg, dss.Cmd(dss.OpXDS110Upgrade))
}

// xds110 dispatches a probe operation; failures are hardware errors carrying
// the engine's diagnostic verbatim.
func (e *Executor) xds110(cfg SessionConfig, cmd dss.Command) (bool, error) {
	b, err := e.session(cfg)
	if err != nil {
		return false, err
	}
	res, err := e.run(b, cmd)
	if err != nil {
		return false, err
	}
	if !res.Success {
		return false, fmt.Errorf("%w: %s", ErrHardware, res.Output)
	}
	return true, nil
}
