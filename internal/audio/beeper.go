package audio

// Beeper converts the ULA's single-bit EAR/speaker output into a stream
// of float32 samples at a fixed host sample rate, by sampling the bit's
// current state once per output sample regardless of how many T-states
// separate the edges driving it.
type Beeper struct {
	sampleRate     int
	tStatesPerSamp float64
	carry          float64
	level          float32
}

// NewBeeper builds a Beeper for the given host sample rate and the
// machine's T-states-per-frame/frames-per-second product (T-states per
// second).
func NewBeeper(sampleRate int, tStatesPerSecond int) *Beeper {
	return &Beeper{
		sampleRate:     sampleRate,
		tStatesPerSamp: float64(tStatesPerSecond) / float64(sampleRate),
	}
}

// SetLevel records the speaker bit's current state as either +0.35 or -0.35.
func (b *Beeper) SetLevel(on bool) {
	if on {
		b.level = 0.35
	} else {
		b.level = -0.35
	}
}

// Generate appends one sample per elapsed tStates worth of emulated
// time to out, holding the last level set via SetLevel across however
// many samples that spans.
func (b *Beeper) Generate(tStates int, out []float32) []float32 {
	remaining := float64(tStates) + b.carry
	for remaining >= b.tStatesPerSamp {
		out = append(out, b.level)
		remaining -= b.tStatesPerSamp
	}
	b.carry = remaining
	return out
}
