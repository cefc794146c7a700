package arena

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// KeyCode identifies a key recognised by the core. Any other code is ignored.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRaiseRestitution
	KeyLowerRestitution
)

// Event is an input event consumed by World.Step.
type Event interface {
	isEvent()
}

type PointerDown struct {
	Pos    Vec2
	Button Button
}

type PointerUp struct {
	Button Button
}

type KeyDown struct {
	Code KeyCode
}

type Quit struct{}

func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (KeyDown) isEvent()     {}
func (Quit) isEvent()        {}

// Frame is everything the input collaborator delivers for one tick: the
// events queued since the previous frame and the current pointer position.
type Frame struct {
	Events  []Event
	Pointer Vec2
}
