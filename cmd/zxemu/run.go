package main

import (
	"fmt"
	"os"

	"github.com/zxemu/core/internal/audio"
	"github.com/zxemu/core/internal/config"
	"github.com/zxemu/core/internal/machine"
	"github.com/zxemu/core/internal/snapshot"
	"github.com/zxemu/core/internal/video"
)

func runMachine(cfg *config.Config) error {
	if cfg.ROMPath == "" {
		return fmt.Errorf("run: --rom is required")
	}
	model, err := cfg.ResolveModel()
	if err != nil {
		return err
	}
	rom, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		return fmt.Errorf("run: read ROM: %w", err)
	}

	m := machine.New(model, [][]byte{rom})

	if cfg.Snapshot != "" {
		data, err := os.ReadFile(cfg.Snapshot)
		if err != nil {
			return fmt.Errorf("run: read snapshot: %w", err)
		}
		if err := snapshot.Load(m, data); err != nil {
			return fmt.Errorf("run: load snapshot: %w", err)
		}
	}

	ring := audio.NewRing(cfg.SampleRate / 4)
	sink, err := audio.NewHostSink(cfg.SampleRate, ring)
	if err != nil {
		return fmt.Errorf("run: open audio sink: %w", err)
	}
	sink.Start()
	defer sink.Close()

	game := video.New(m, ring, cfg.SampleRate, cfg.Scale)
	return video.Run(game, "zxemu")
}
