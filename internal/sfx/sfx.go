// Package sfx plays short synthesized cues. No sound files are involved, the
// samples are generated once per cue and streamed through oto.
package sfx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	SampleRate   = 44100
	channelCount = 2
	bytesPerSamp = 4
	attack       = 0.005 // seconds
)

type Cue int

const (
	CueOpen Cue = iota
	CueFall
	CueLand
	CueClear
	CueReset
)

// tone is a sine sweep from From to To hertz.
type tone struct {
	From, To float64
	Seconds  float64
	Gain     float64
}

var cues = map[Cue][]tone{
	CueOpen:  {{From: 90, To: 60, Seconds: 0.35, Gain: 0.5}},
	CueFall:  {{From: 880, To: 220, Seconds: 0.4, Gain: 0.25}},
	CueLand:  {{From: 140, To: 70, Seconds: 0.15, Gain: 0.6}},
	CueClear: {{From: 523, To: 523, Seconds: 0.12, Gain: 0.3}, {From: 659, To: 659, Seconds: 0.12, Gain: 0.3}, {From: 784, To: 784, Seconds: 0.3, Gain: 0.3}},
	CueReset: {{From: 330, To: 440, Seconds: 0.08, Gain: 0.25}},
}

// Synthesize renders a cue as interleaved stereo float32 little endian PCM.
func Synthesize(c Cue) ([]byte, error) {
	tones, ok := cues[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", c)
	}
	var buf bytes.Buffer
	frame := make([]byte, channelCount*bytesPerSamp)
	for _, t := range tones {
		n := int(t.Seconds * SampleRate)
		phase := 0.0
		for i := range n {
			p := float64(i) / float64(n)
			phase += 2 * math.Pi * (t.From + (t.To-t.From)*p) / SampleRate
			env := 1 - p
			if at := float64(i) / SampleRate; at < attack {
				env *= at / attack
			}
			bits := math.Float32bits(float32(math.Sin(phase) * env * t.Gain))
			for ch := range channelCount {
				binary.LittleEndian.PutUint32(frame[ch*bytesPerSamp:], bits)
			}
			buf.Write(frame)
		}
	}
	return buf.Bytes(), nil
}

// Player owns the audio context. A nil *Player is silent.
type Player struct {
	ctx *oto.Context

	mu      sync.Mutex
	samples map[Cue][]byte
	active  []*oto.Player
}

// New opens the default audio device.
func New() (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	<-ready
	return &Player{ctx: ctx, samples: make(map[Cue][]byte)}, nil
}

// Play starts a cue and returns immediately. Cues may overlap.
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	data, ok := p.samples[c]
	if !ok {
		var err error
		if data, err = Synthesize(c); err != nil {
			slog.Warn("Cue skipped", "error", err)
			return
		}
		p.samples[c] = data
	}

	// Players that finished are released before starting a new one.
	live := p.active[:0]
	for _, ap := range p.active {
		if ap.IsPlaying() {
			live = append(live, ap)
		} else {
			ap.Close()
		}
	}
	ap := p.ctx.NewPlayer(bytes.NewReader(data))
	ap.Play()
	p.active = append(live, ap)
}
