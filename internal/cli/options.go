package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	optionPre   string
	optionBool  bool
	optionFloat bool
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Inspect the session device's option namespace",
}

var optionsListCmd = &cobra.Command{
	Use:   "list [ID]",
	Short: "List device options, optionally filtered by id substring",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOptionsList,
}

var optionsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Read the value of a device option",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptionsGet,
}

func init() {
	optionsGetCmd.Flags().StringVar(&optionPre, "pre", "", "operation to run immediately before the read")
	optionsGetCmd.Flags().BoolVar(&optionBool, "bool", false, "parse the value as a boolean")
	optionsGetCmd.Flags().BoolVar(&optionFloat, "float", false, "parse the value as a float")
	optionsCmd.AddCommand(optionsListCmd)
	optionsCmd.AddCommand(optionsGetCmd)
}

func runOptionsList(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}
	return exec.PrintOptions(os.Stdout, sessionConfig(), filter)
}

func runOptionsGet(cmd *cobra.Command, args []string) error {
	if optionBool && optionFloat {
		return fmt.Errorf("--bool and --float are mutually exclusive")
	}
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	switch {
	case optionBool:
		val, err := exec.GetBoolOption(sessionConfig(), args[0], optionPre)
		if err != nil {
			return err
		}
		fmt.Println(val)
	case optionFloat:
		val, err := exec.GetFloatOption(sessionConfig(), args[0], optionPre)
		if err != nil {
			return err
		}
		fmt.Println(val)
	default:
		val, err := exec.GetOption(sessionConfig(), args[0], optionPre)
		if err != nil {
			return err
		}
		fmt.Println(val)
	}
	return nil
}
