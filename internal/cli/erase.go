package cli

import (
	"github.com/spf13/cobra"
)

var eraseOptionFlags []string

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase the device flash",
	Args:  cobra.NoArgs,
	RunE:  runErase,
}

func init() {
	eraseCmd.Flags().StringArrayVar(&eraseOptionFlags, "option", nil, "device option to set first (id=value, repeatable)")
}

func runErase(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	options, err := parseOptionFlags(eraseOptionFlags)
	if err != nil {
		return err
	}
	ok, err := exec.Erase(sessionConfig(), options)
	if err != nil {
		return err
	}
	return reportOutcome("erase", ok)
}
