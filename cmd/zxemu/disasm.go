package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
	"golang.org/x/term"

	"github.com/zxemu/core/internal/config"
	"github.com/zxemu/core/internal/disasm"
	"github.com/zxemu/core/internal/machine"
	"github.com/zxemu/core/internal/snapshot"
)

func newDisasmCommand() *cobra.Command {
	cfg := &config.Config{}
	var listingLines int
	cmd := &cobra.Command{
		Use:   "disasm",
		Short: "Interactively step-disassemble a ROM or snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisasmREPL(cfg, listingLines)
		},
	}
	cfg.BindFlags(cmd)
	cmd.Flags().IntVar(&listingLines, "lines", 10, "instructions shown per listing")
	return cmd
}

// runDisasmREPL puts the terminal into raw mode and drives a tiny
// step-disassembler: 's' steps one instruction, 'c' runs a frame,
// 'y' copies the current listing to the clipboard, 'q' quits.
func runDisasmREPL(cfg *config.Config, listingLines int) error {
	if cfg.ROMPath == "" {
		return fmt.Errorf("disasm: --rom is required")
	}
	model, err := cfg.ResolveModel()
	if err != nil {
		return err
	}
	rom, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		return fmt.Errorf("disasm: read ROM: %w", err)
	}
	m := machine.New(model, [][]byte{rom})
	if cfg.Snapshot != "" {
		data, err := os.ReadFile(cfg.Snapshot)
		if err != nil {
			return fmt.Errorf("disasm: read snapshot: %w", err)
		}
		if err := snapshot.Load(m, data); err != nil {
			return fmt.Errorf("disasm: load snapshot: %w", err)
		}
	}

	clipboardReady := clipboard.Init() == nil

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("disasm: enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var lastListing string
	printListing := func() {
		lines := disasm.Disassemble(busReader{m}, m.CPU.PC, listingLines)
		var b strings.Builder
		for _, l := range lines {
			b.WriteString(l.Text())
			b.WriteString("\r\n")
		}
		lastListing = b.String()
		out.WriteString("\r\n" + lastListing)
		out.Flush()
	}

	out.WriteString("zxemu disasm  s=step c=frame y=copy q=quit\r\n")
	printListing()

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return fmt.Errorf("disasm: read input: %w", err)
		}
		switch buf[0] {
		case 's':
			m.CPU.Step()
			printListing()
		case 'c':
			m.RunFrame()
			printListing()
		case 'y':
			if clipboardReady {
				clipboard.Write(clipboard.FmtText, []byte(lastListing))
				out.WriteString("\r\n(copied)\r\n")
			} else {
				out.WriteString("\r\n(clipboard unavailable)\r\n")
			}
			out.Flush()
		case 'q':
			return nil
		}
	}
}

// busReader exposes the machine's effective memory map to the
// disassembler without it needing to know about VRAM shadowing.
type busReader struct{ m *machine.Machine }

func (b busReader) ReadByte(addr uint16) byte {
	return b.m.Memory.ReadByte(addr)
}
