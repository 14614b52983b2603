package cli

import (
	"github.com/dsflash-io/dsflash/internal/logging"
	"github.com/spf13/cobra"
)

// Session and identity flags shared by every command.
var (
	flagCCS        string
	flagSerial     string
	flagDeviceType string
	flagConnection string
	flagCCXML      string
	flagChip       string
	flagTimeout    float64
	flagFresh      bool
	flagDebug      bool
	flagAttach     bool
)

var rootCmd = &cobra.Command{
	Use:   "dsflash",
	Short: "Flash and debug TI targets through the DSS engine",
	Long: `dsflash talks to embedded TI targets (microcontrollers/DSPs) through the
Debug Server Scripting engine of a Code Composer Studio installation.

Target identity can be given partially: a serial number, a device type, an
explicit .ccxml file, or any combination. dsflash resolves them against the
per-user target-configuration cache, regenerating the configuration whenever
the pieces disagree.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(flagDebug)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagCCS, "ccs", "", "CCS installation path or version constraint (default: highest installed)")
	pf.StringVar(&flagSerial, "serno", "", "serial number of the debug probe")
	pf.StringVarP(&flagDeviceType, "devicetype", "d", "", "device type of the target")
	pf.StringVar(&flagConnection, "connection", "", "connection (debug probe) type")
	pf.StringVar(&flagCCXML, "ccxml", "", "explicit target-configuration file to use")
	pf.StringVar(&flagChip, "chip", "", "chip/cpu to open the session on")
	pf.Float64VarP(&flagTimeout, "timeout", "t", 0, "engine call timeout in seconds")
	pf.BoolVar(&flagFresh, "fresh", false, "force regeneration of the target configuration")
	pf.BoolVar(&flagDebug, "debug", false, "verbose engine and tool output")
	pf.BoolVar(&flagAttach, "attach", false, "attach a debug session after the operation")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(eraseCmd)
	rootCmd.AddCommand(flashCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(connectionsCmd)
	rootCmd.AddCommand(devicetypesCmd)
	rootCmd.AddCommand(cpusCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(xds110Cmd)
	rootCmd.AddCommand(versionCmd)
}
