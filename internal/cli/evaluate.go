package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evaluateSymbols string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate EXPR",
	Short: "Evaluate a C/GEL expression on the target",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateSymbols, "symbols", "", "symbol file (.out or GEL) to load first")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	result, err := exec.Evaluate(sessionConfig(), args[0], evaluateSymbols)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
