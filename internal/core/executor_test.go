package core

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsflash-io/dsflash/internal/ccxml"
	"github.com/dsflash-io/dsflash/internal/dss"
)

// newExecutor wires an Executor over a fake bridge and a session config
// addressing a real artifact on disk.
func newExecutor(t *testing.T, bridge *fakeBridge) (*Executor, SessionConfig) {
	dir := t.TempDir()
	path := ccxml.PathFor(dir, "L4100009")
	writeArtifact(t, path, "CC1310F128", "Texas Instruments XDS110 USB Debug Probe", "L4100009")

	e := &Executor{
		Exe:    "/opt/ti/ccs/eclipse/eclipsec",
		Bridge: bridge,
		Builder: &Builder{
			Resolver:      &Resolver{ConfigDir: dir, Gen: &fakeGen{t: t, dir: dir}},
			DB:            &fakeDB{cpu: "Cortex_M3_0"},
			WorkspaceRoot: filepath.Join(dir, "workspaces"),
		},
	}
	cfg := SessionConfig{Serial: "L4100009", Chip: "Cortex_M3_0"}
	return e, cfg
}

func TestReset(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true}}
	e, cfg := newExecutor(t, bridge)

	ok, err := e.Reset(cfg, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, bridge.script(), "--operation "+dss.OpReset)
}

func TestReset_EngineReportedFailure(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Output: "reset failed"}}
	e, cfg := newExecutor(t, bridge)

	ok, err := e.Reset(cfg, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReset_Timeout(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{TimedOut: true, Output: "killed"}}
	e, cfg := newExecutor(t, bridge)

	_, err := e.Reset(cfg, nil)
	assert.ErrorIs(t, err, dss.ErrTimeout)
}

func TestErase_OptionsApplyBeforeAction(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true}}
	e, cfg := newExecutor(t, bridge)

	ok, err := e.Erase(cfg, map[string]string{
		"PreEraseReset":   "true",
		"FlashEraseRange": "0",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	script := bridge.script()
	a := strings.Index(script, "FlashEraseRange")
	b := strings.Index(script, "PreEraseReset")
	c := strings.Index(script, "--operation "+dss.OpErase)
	require.True(t, a >= 0 && b >= 0 && c >= 0)
	// Options go out in stable order, ahead of the primary action.
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestFlash_ComposesImageArguments(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true}}
	e, cfg := newExecutor(t, bridge)

	ok, err := e.Flash(cfg, "app.out", true, "0x1000", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	script := bridge.script()
	assert.Contains(t, script, "--operation "+dss.OpFlash+" app.out --binary --address 0x1000")
}

func TestGetOption(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true, Output: "  42 \n"}}
	e, cfg := newExecutor(t, bridge)

	val, err := e.GetOption(cfg, "DeviceInfoRevision", "")
	require.NoError(t, err)
	assert.Equal(t, "42", val)
}

func TestGetOption_PreOperation(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true, Output: "1"}}
	e, cfg := newExecutor(t, bridge)

	_, err := e.GetOption(cfg, "DeviceInfoRevision", "halt")
	require.NoError(t, err)

	script := bridge.script()
	pre := strings.Index(script, "--operation halt")
	get := strings.Index(script, "--operation "+dss.OpGetOption)
	require.True(t, pre >= 0 && get >= 0)
	assert.Less(t, pre, get)
}

func TestGetOption_Unknown(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Output: "error: unknown option BadId"}}
	e, cfg := newExecutor(t, bridge)

	_, err := e.GetOption(cfg, "BadId", "")
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestGetBoolOption(t *testing.T) {
	for literal, want := range map[string]bool{"True": true, "true": true, "1": true,
		"False": false, "false": false, "0": false} {
		bridge := &fakeBridge{result: dss.Result{Success: true, Output: literal}}
		e, cfg := newExecutor(t, bridge)

		val, err := e.GetBoolOption(cfg, "ResetOnRestart", "")
		require.NoError(t, err, literal)
		assert.Equal(t, want, val, literal)
	}

	bridge := &fakeBridge{result: dss.Result{Success: true, Output: "maybe"}}
	e, cfg := newExecutor(t, bridge)
	_, err := e.GetBoolOption(cfg, "ResetOnRestart", "")
	assert.ErrorIs(t, err, dss.ErrParse)
}

func TestGetFloatOption(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true, Output: "3.14\n"}}
	e, cfg := newExecutor(t, bridge)

	val, err := e.GetFloatOption(cfg, "CoreVoltage", "")
	require.NoError(t, err)
	assert.InDelta(t, 3.14, val, 1e-9)

	bridge.result = dss.Result{Success: true, Output: "abc"}
	_, err = e.GetFloatOption(cfg, "CoreVoltage", "")
	assert.ErrorIs(t, err, dss.ErrParse)
}

func TestListOptions(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true,
		Output: "ResetOnRestart\ttrue\tReset the board on restart\n"}}
	e, cfg := newExecutor(t, bridge)

	opts, err := e.ListOptions(cfg, "")
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "ResetOnRestart", opts[0].ID)
}

func TestConnections_SearchFiltersAfterCall(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true,
		Output: "XDS110\nXDS100v2\nMSP-FET\n"}}
	e, _ := newExecutor(t, bridge)

	all, err := e.Connections("")
	require.NoError(t, err)
	assert.Equal(t, []string{"XDS110", "XDS100v2", "MSP-FET"}, all)

	filtered, err := e.Connections("XDS")
	require.NoError(t, err)
	assert.Equal(t, []string{"XDS110", "XDS100v2"}, filtered)
	// The filter never reaches the engine.
	assert.NotContains(t, bridge.script(), "XDS")
}

func TestMemoryRead(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true, Output: "0x41 0x42\n"}}
	e, cfg := newExecutor(t, bridge)

	data, err := e.MemoryRead(cfg, 0x2000, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x42}, data)
	assert.Contains(t, bridge.script(), "--operation "+dss.OpMemoryRead+" 0x2000 2 0")
}

func TestMemoryWrite_Failure(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Output: "write error"}}
	e, cfg := newExecutor(t, bridge)

	err := e.MemoryWrite(cfg, 0x2000, []byte{0xff}, 0)
	assert.ErrorIs(t, err, dss.ErrProcess)
}

func TestEvaluate(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true, Output: "0x00000042\n"}}
	e, cfg := newExecutor(t, bridge)

	result, err := e.Evaluate(cfg, "&g_counter", "app.out")
	require.NoError(t, err)
	assert.Equal(t, "0x00000042", result)
	assert.Contains(t, bridge.script(), "--symbols app.out")
}

func TestAttach_BindsWorkspace(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true}}
	e, cfg := newExecutor(t, bridge)

	require.NoError(t, e.Attach(cfg))
	assert.Contains(t, bridge.last, "-data")
	assert.Contains(t, bridge.script(), "--operation "+dss.OpNop)
}

func TestXDS110Reset(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true}}
	e, cfg := newExecutor(t, bridge)

	ok, err := e.XDS110Reset(cfg)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, bridge.script(), dss.OpXDS110Reset+" L4100009")
}

func TestXDS110Reset_RequiresSerial(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true}}
	e, cfg := newExecutor(t, bridge)
	cfg.Serial = ""
	cfg.DeviceType = "CC1310F128"

	_, err := e.XDS110Reset(cfg)
	assert.Error(t, err)
	assert.Zero(t, bridge.calls)
}

func TestXDS110Reset_HardwareFailure(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Output: "xds110reset: failed"}}
	e, cfg := newExecutor(t, bridge)

	_, err := e.XDS110Reset(cfg)
	assert.ErrorIs(t, err, ErrHardware)
	assert.Contains(t, err.Error(), "xds110reset: failed")
}

func TestXDS110List(t *testing.T) {
	bridge := &fakeBridge{result: dss.Result{Success: true, Output: "L4100009\nL4100010\n"}}
	e, _ := newExecutor(t, bridge)

	sernos, err := e.XDS110List()
	require.NoError(t, err)
	assert.Equal(t, []string{"L4100009", "L4100010"}, sernos)
}
