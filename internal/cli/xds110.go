package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var xds110Cmd = &cobra.Command{
	Use:   "xds110",
	Short: "Manage XDS110 debug probes",
}

var xds110ResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the XDS110 probe selected by --serno",
	Args:  cobra.NoArgs,
	RunE:  runXDS110Reset,
}

var xds110ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List serial numbers of connected XDS110 probes",
	Args:  cobra.NoArgs,
	RunE:  runXDS110List,
}

var xds110UpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Reflash the XDS110 probe firmware",
	Args:  cobra.NoArgs,
	RunE:  runXDS110Upgrade,
}

func init() {
	xds110Cmd.AddCommand(xds110ResetCmd)
	xds110Cmd.AddCommand(xds110ListCmd)
	xds110Cmd.AddCommand(xds110UpgradeCmd)
}

func runXDS110Reset(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	ok, err := exec.XDS110Reset(sessionConfig())
	if err != nil {
		return err
	}
	return reportOutcome("xds110 reset", ok)
}

func runXDS110List(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	sernos, err := exec.XDS110List()
	if err != nil {
		return err
	}
	for _, serno := range sernos {
		fmt.Println(serno)
	}
	return nil
}

func runXDS110Upgrade(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	ok, err := exec.XDS110Upgrade(sessionConfig())
	if err != nil {
		return err
	}
	return reportOutcome("xds110 upgrade", ok)
}
