//go:build !portaudio

package audio

import "errors"

// ErrUnavailable is returned by Start in builds without the portaudio tag.
var ErrUnavailable = errors.New("audio: built without portaudio support")

type Player struct {
	tone *Tone
}

func NewPlayer(t *Tone) *Player {
	return &Player{tone: t}
}

func (p *Player) Name() string    { return "audio (not available)" }
func (p *Player) Available() bool { return false }
func (p *Player) Start() error    { return ErrUnavailable }
func (p *Player) Stop()           {}
