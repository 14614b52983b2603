package cli

import (
	"github.com/spf13/cobra"
)

var (
	verifyBinary      bool
	verifyAddress     string
	verifyOptionFlags []string
)

var verifyCmd = &cobra.Command{
	Use:   "verify IMAGE",
	Short: "Verify the device contents against an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyBinary, "bin", false, "treat the image as raw binary")
	verifyCmd.Flags().StringVar(&verifyAddress, "address", "", "offset address to verify the image at")
	verifyCmd.Flags().StringArrayVar(&verifyOptionFlags, "option", nil, "device option to set first (id=value, repeatable)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	options, err := parseOptionFlags(verifyOptionFlags)
	if err != nil {
		return err
	}
	ok, err := exec.Verify(sessionConfig(), args[0], verifyBinary, verifyAddress, options)
	if err != nil {
		return err
	}
	return reportOutcome("verify", ok)
}
