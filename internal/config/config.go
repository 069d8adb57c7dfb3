// Package config defines the emulator's runtime settings and binds them
// to command-line flags via cobra.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zxemu/core/internal/memory"
)

// Config holds every setting the "run" subcommand needs to boot a
// machine: which model to emulate, where its ROM/snapshot images live,
// and how the host window and audio device should be configured.
type Config struct {
	Model      string
	ROMPath    string
	Snapshot   string
	Scale      int
	Fullscreen bool
	SampleRate int
}

// BindFlags registers Config's fields onto cmd's flag set with their
// defaults.
func (c *Config) BindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.Model, "model", "48k", "machine model: 48k, 128k, +2, +2a, or +3")
	cmd.Flags().StringVar(&c.ROMPath, "rom", "", "path to the ROM image (required)")
	cmd.Flags().StringVar(&c.Snapshot, "snapshot", "", "optional .sna or .z80 snapshot to load at startup")
	cmd.Flags().IntVar(&c.Scale, "scale", 2, "integer pixel scale for the display window")
	cmd.Flags().BoolVar(&c.Fullscreen, "fullscreen", false, "fullscreen mode (has no effect: the window is never made fullscreen)")
	cmd.Flags().IntVar(&c.SampleRate, "sample-rate", 44100, "host audio sample rate override")
}

// ResolveModel maps Config.Model's flag spelling onto memory.Model.
func (c *Config) ResolveModel() (memory.Model, error) {
	switch c.Model {
	case "48k":
		return memory.Model48K, nil
	case "128k":
		return memory.Model128K, nil
	case "+2":
		return memory.ModelPlus2, nil
	case "+2a":
		return memory.ModelPlus2A, nil
	case "+3":
		return memory.ModelPlus3, nil
	default:
		return 0, fmt.Errorf("config: unknown model %q", c.Model)
	}
}
