package dss

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchArgs_Sessionless(t *testing.T) {
	args := BatchArgs(Binding{}, Cmd(OpGetConnections))

	require.Len(t, args, 7)
	assert.Equal(t, "-noSplash", args[0])
	assert.Equal(t, "-application", args[1])
	assert.Equal(t, "-dss.rhinoArgs", args[5])
	assert.Equal(t, engineScript+" --operation "+OpGetConnections, args[6])
}

func TestBatchArgs_SessionBindings(t *testing.T) {
	b := Binding{
		ConfigPath: "/cfg/SN1.ccxml",
		Chip:       "Cortex_M3_0",
		Timeout:    30 * time.Second,
		Debug:      true,
		Workspace:  "/ws/SN1",
	}
	args := BatchArgs(b, Cmd(OpSetOption, "ResetOnRestart", "true"), Cmd(OpReset))

	assert.Contains(t, args, "-data")
	assert.Contains(t, args, "/ws/SN1")

	script := args[len(args)-1]
	assert.Contains(t, script, "--config /cfg/SN1.ccxml")
	assert.Contains(t, script, "--chip Cortex_M3_0")
	assert.Contains(t, script, "--timeout 30")
	assert.Contains(t, script, "--debug")

	// Commands keep their submission order inside the batch.
	setIdx := strings.Index(script, OpSetOption)
	resetIdx := strings.LastIndex(script, "--operation "+OpReset)
	require.GreaterOrEqual(t, setIdx, 0)
	require.GreaterOrEqual(t, resetIdx, 0)
	assert.Less(t, setIdx, resetIdx)
}
