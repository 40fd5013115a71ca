package bootstrap

// EventPump is the window side of the idle loop.
type EventPump interface {
	// PumpEvents processes pending window events and reports whether a
	// close was requested.
	PumpEvents() bool
}

// IdleLoop pumps window events until the window asks to close. Nothing is
// rendered.
func IdleLoop(events EventPump) {
	for !events.PumpEvents() {
	}
}
