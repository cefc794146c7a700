package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player plays a Synth on the default output device.
type Player struct {
	stream *portaudio.Stream
}

// Start opens a stereo output stream rendered by s. Close releases the
// device.
func Start(s *Synth) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.Render)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: start stream: %w", err)
	}
	return &Player{stream: stream}, nil
}

func (p *Player) Close() error {
	err := p.stream.Stop()
	if cerr := p.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
