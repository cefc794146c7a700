package sim

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/config"
)

// Script replays a scripted input timeline. Events due at or before the
// requested tick are delivered in tick order, then file order.
type Script struct {
	events  []scriptEvent
	next    int
	pointer arena.Vec2
}

type scriptEvent struct {
	config.ScriptEvent
	button arena.Button
}

// NewScript checks every event's action and button up front, so a timeline
// built in code fails the same way an invalid scene file does.
func NewScript(events []config.ScriptEvent, pointer arena.Vec2) (*Script, error) {
	parsed := make([]scriptEvent, 0, len(events))
	for i, ev := range events {
		switch ev.Action {
		case config.ActionMove, config.ActionPress, config.ActionRelease,
			config.ActionRaise, config.ActionLower, config.ActionQuit:
		default:
			return nil, fmt.Errorf("%w %d: unknown action %q", config.ErrInvalidScript, i, ev.Action)
		}
		btn, err := config.ParseButton(ev.Button)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", config.ErrInvalidScript, i, err)
		}
		parsed = append(parsed, scriptEvent{ScriptEvent: ev, button: btn})
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].Tick < parsed[j].Tick })
	return &Script{events: parsed, pointer: pointer}, nil
}

func (s *Script) Pointer() arena.Vec2 { return s.pointer }

func (s *Script) Next(tick int) arena.Frame {
	var evs []arena.Event
	for s.next < len(s.events) && s.events[s.next].Tick <= tick {
		if ev := s.translate(s.events[s.next]); ev != nil {
			evs = append(evs, ev)
		}
		s.next++
	}
	return arena.Frame{Events: evs, Pointer: s.pointer}
}

func (s *Script) translate(ev scriptEvent) arena.Event {
	if ev.X != 0 || ev.Y != 0 {
		s.pointer = arena.Vec2{X: ev.X, Y: ev.Y}
	}
	switch ev.Action {
	case config.ActionPress:
		return arena.PointerDown{Pos: s.pointer, Button: ev.button}
	case config.ActionRelease:
		return arena.PointerUp{Button: ev.button}
	case config.ActionRaise:
		return arena.KeyDown{Code: arena.KeyRaiseRestitution}
	case config.ActionLower:
		return arena.KeyDown{Code: arena.KeyLowerRestitution}
	case config.ActionQuit:
		return arena.Quit{}
	}
	return nil
}

// Idle is an input that never produces events.
type Idle struct{}

func (Idle) Next(int) arena.Frame { return arena.Frame{} }
