//go:build !headless

// Package video drives the host display window: it renders the frame
// buffer RunFrame returns each tick, polls the keyboard once per frame
// via internal/input, and saves an upscaled PNG screenshot on F12.
package video

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/draw"

	"github.com/zxemu/core/internal/audio"
	"github.com/zxemu/core/internal/input"
	"github.com/zxemu/core/internal/machine"
	"github.com/zxemu/core/internal/ula"
)

const spectrumTicksPerSecond = 50

// Game adapts a Machine to ebiten's Update/Draw/Layout game loop.
type Game struct {
	machine   *machine.Machine
	poller    *input.Poller
	beeper    *audio.Beeper
	ring      *audio.Ring
	image     *ebiten.Image
	scale     int
	lastFrame []byte
}

// New wires m into a displayable, playable ebiten.Game at the given
// integer pixel scale.
func New(m *machine.Machine, ring *audio.Ring, sampleRate, scale int) *Game {
	return &Game{
		machine: m,
		poller:  input.NewStandardPoller(),
		beeper:  audio.NewBeeper(sampleRate, spectrumTicksPerSecond*69888),
		ring:    ring,
		scale:   scale,
	}
}

// Update advances one emulated frame: polls input, runs the machine for
// one display frame, and pushes the resulting audio into the ring.
func (g *Game) Update() error {
	g.poller.Poll(g.machine)
	frame := g.machine.RunFrame()
	if g.image == nil {
		g.image = ebiten.NewImage(ula.FrameWidth, ula.FrameHeight)
	}
	g.image.WritePixels(frame)
	g.lastFrame = frame

	samples := g.beeper.Generate(69888, nil)
	g.ring.Write(samples)

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if err := g.saveScreenshot(); err != nil {
			fmt.Fprintln(os.Stderr, "video: screenshot:", err)
		}
	}
	return nil
}

// saveScreenshot upscales the current frame to the on-screen window size
// with a smooth resampling filter and writes it as a PNG next to the
// working directory, named by wall-clock time.
func (g *Game) saveScreenshot() error {
	if g.lastFrame == nil {
		return nil
	}
	src := &image.RGBA{
		Pix:    g.lastFrame,
		Stride: ula.FrameWidth * 4,
		Rect:   image.Rect(0, 0, ula.FrameWidth, ula.FrameHeight),
	}
	dst := image.NewRGBA(image.Rect(0, 0, ula.FrameWidth*g.scale, ula.FrameHeight*g.scale))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(fmt.Sprintf("zxemu-%d.png", time.Now().UnixNano()))
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}

// Draw blits the last rendered frame, scaled, onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.image, op)
}

// Layout reports the scaled window size ebiten should allocate.
func (g *Game) Layout(_, _ int) (int, int) {
	return ula.FrameWidth * g.scale, ula.FrameHeight * g.scale
}

// Run opens the host window and blocks running the game loop at the
// Spectrum's native 50Hz frame rate until the window is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(ula.FrameWidth*g.scale, ula.FrameHeight*g.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(spectrumTicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("video: run game loop: %w", err)
	}
	return nil
}
