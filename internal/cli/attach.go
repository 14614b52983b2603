package cli

import (
	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Open a debug session and attach to the device",
	Args:  cobra.NoArgs,
	RunE:  runAttach,
}

func runAttach(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	return exec.Attach(sessionConfig())
}
