//go:build !headless

package audio

import (
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// HostSink plays a Ring's samples through the host's audio device via
// oto/v3. Its Read method is called back on oto's own playback thread.
type HostSink struct {
	ctx     *oto.Context
	player  *oto.Player
	ring    *Ring
	started bool
}

// NewHostSink opens an oto context at sampleRate and wires it to drain
// ring.
func NewHostSink(sampleRate int, ring *Ring) (*HostSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &HostSink{ctx: ctx, ring: ring}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

// Read implements io.Reader for oto's player: it drains float32 samples
// from the ring and reinterprets them as the little-endian byte stream
// oto expects.
func (s *HostSink) Read(p []byte) (int, error) {
	numSamples := len(p) / 4
	if numSamples == 0 {
		return 0, nil
	}
	samples := make([]float32, numSamples)
	s.ring.Read(samples)
	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

// Start begins playback.
func (s *HostSink) Start() {
	if !s.started {
		s.player.Play()
		s.started = true
	}
}

// Stop halts playback; the sink can be restarted with Start.
func (s *HostSink) Stop() {
	if s.started {
		s.player.Pause()
		s.started = false
	}
}

// Close releases the underlying oto player.
func (s *HostSink) Close() error {
	s.Stop()
	return s.player.Close()
}
