//go:build headless

package audio

// HostSink is a no-op audio sink for headless builds (CI, the
// disassembler-only CLI mode) where no audio device is available.
type HostSink struct {
	ring    *Ring
	started bool
}

func NewHostSink(sampleRate int, ring *Ring) (*HostSink, error) {
	return &HostSink{ring: ring}, nil
}

func (s *HostSink) Start() { s.started = true }
func (s *HostSink) Stop()  { s.started = false }
func (s *HostSink) Close() error {
	s.started = false
	return nil
}
