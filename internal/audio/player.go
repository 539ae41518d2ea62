//go:build portaudio

package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player streams a Tone to the default output device.
type Player struct {
	tone   *Tone
	stream *portaudio.Stream
}

func NewPlayer(t *Tone) *Player {
	return &Player{tone: t}
}

func (p *Player) Name() string    { return "portaudio" }
func (p *Player) Available() bool { return true }

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, SampleRate, BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}
	p.stream = stream
	return nil
}

func (p *Player) process(out []float32) {
	p.tone.Fill(out)
}

func (p *Player) Stop() {
	if p.stream == nil {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	p.stream = nil
	portaudio.Terminate()
}
