package cli

import (
	"github.com/spf13/cobra"
)

var (
	flashBinary      bool
	flashAddress     string
	flashOptionFlags []string
)

var flashCmd = &cobra.Command{
	Use:   "flash IMAGE",
	Short: "Program an image onto the device",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlash,
}

func init() {
	flashCmd.Flags().BoolVar(&flashBinary, "bin", false, "treat the image as raw binary")
	flashCmd.Flags().StringVar(&flashAddress, "address", "", "offset address to program the image at")
	flashCmd.Flags().StringArrayVar(&flashOptionFlags, "option", nil, "device option to set first (id=value, repeatable)")
}

func runFlash(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	options, err := parseOptionFlags(flashOptionFlags)
	if err != nil {
		return err
	}
	ok, err := exec.Flash(sessionConfig(), args[0], flashBinary, flashAddress, options)
	if err != nil {
		return err
	}
	return reportOutcome("flash", ok)
}
