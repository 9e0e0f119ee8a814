package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player streams a Drone to the default output device.
type Player struct {
	drone  *Drone
	stream *portaudio.Stream
}

func NewPlayer(d *Drone) *Player {
	return &Player{drone: d}
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	// Output only. Duplex streams fail on many Linux setups.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.drone.Process)
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

func (p *Player) Stop() {
	if p.stream == nil {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	p.stream = nil
	portaudio.Terminate()
}
