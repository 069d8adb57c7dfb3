// Command zxemu runs the ZX Spectrum emulator, either as a windowed
// machine or, via the "disasm" subcommand, as a raw-mode step
// disassembler.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxemu/core/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:   "zxemu",
		Short: "A ZX Spectrum emulator",
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newDisasmCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	cfg := &config.Config{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Boot a machine and open its display window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(cfg)
		},
	}
	cfg.BindFlags(cmd)
	return cmd
}
