package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var connectionsCmd = &cobra.Command{
	Use:   "connections [SEARCH]",
	Short: "List connection types the installation knows",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListing(args, func(exec listingExecutor, search string) ([]string, error) {
			return exec.Connections(search)
		})
	},
}

var devicetypesCmd = &cobra.Command{
	Use:   "devicetypes [SEARCH]",
	Short: "List device types the installation knows",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListing(args, func(exec listingExecutor, search string) ([]string, error) {
			return exec.DeviceTypes(search)
		})
	},
}

var cpusCmd = &cobra.Command{
	Use:   "cpus [SEARCH]",
	Short: "List CPUs the installation knows",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListing(args, func(exec listingExecutor, search string) ([]string, error) {
			return exec.CPUs(search)
		})
	},
}

type listingExecutor interface {
	Connections(search string) ([]string, error)
	DeviceTypes(search string) ([]string, error)
	CPUs(search string) ([]string, error)
}

func runListing(args []string, list func(listingExecutor, string) ([]string, error)) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	search := ""
	if len(args) > 0 {
		search = args[0]
	}
	entries, err := list(exec, search)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Println(entry)
	}
	return nil
}
