package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	memoryReadBytes int
	memoryPage      int
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Read and write device memory",
}

var memoryReadCmd = &cobra.Command{
	Use:   "read ADDRESS",
	Short: "Read bytes from device memory",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryRead,
}

var memoryWriteCmd = &cobra.Command{
	Use:   "write ADDRESS BYTE...",
	Short: "Write bytes to device memory",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMemoryWrite,
}

func init() {
	memoryReadCmd.Flags().IntVar(&memoryReadBytes, "bytes", 1, "number of bytes to read")
	memoryCmd.PersistentFlags().IntVar(&memoryPage, "page", 0, "memory page")
	memoryCmd.AddCommand(memoryReadCmd)
	memoryCmd.AddCommand(memoryWriteCmd)
}

func runMemoryRead(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	data, err := exec.MemoryRead(sessionConfig(), address, memoryReadBytes, memoryPage)
	if err != nil {
		return err
	}
	for i, b := range data {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Printf("%#02x", b)
	}
	fmt.Println()
	return nil
}

func runMemoryWrite(cmd *cobra.Command, args []string) error {
	exec, err := newExecutor()
	if err != nil {
		return err
	}
	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	data := make([]byte, 0, len(args)-1)
	for _, arg := range args[1:] {
		b, err := parseAddress(arg)
		if err != nil || b > 0xff {
			return fmt.Errorf("invalid byte value %q", arg)
		}
		data = append(data, byte(b))
	}
	return exec.MemoryWrite(sessionConfig(), address, data, memoryPage)
}
