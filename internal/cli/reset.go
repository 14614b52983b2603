package cli

import (
	"github.com/spf13/cobra"
)

var resetOptionFlags []string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Perform a board reset",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().StringArrayVar(&resetOptionFlags, "option", nil, "device option to set first (id=value, repeatable)")
}

func runReset(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	options, err := parseOptionFlags(resetOptionFlags)
	if err != nil {
		return err
	}
	ok, err := exec.Reset(sessionConfig(), options)
	if err != nil {
		return err
	}
	return reportOutcome("reset", ok)
}
