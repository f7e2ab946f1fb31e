package player

// State is the playback lifecycle state
type State int

const (
	// Idle means the loop was never entered (bad path or open failure)
	Idle State = iota
	Running
	Paused
	Finished
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Done reports whether s is terminal
func (s State) Done() bool {
	return s == Finished || s == Cancelled
}

type event int

const (
	evTogglePause event = iota
	evQuit
	evEndOfStream
	evInterrupt
)

func (e event) String() string {
	switch e {
	case evTogglePause:
		return "toggle-pause"
	case evQuit:
		return "quit"
	case evEndOfStream:
		return "end-of-stream"
	case evInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// keyEvent maps a keypress to an event
func keyEvent(key rune) (event, bool) {
	switch key {
	case keyPause:
		return evTogglePause, true
	case keyQuit:
		return evQuit, true
	case keyInterrupt:
		return evInterrupt, true
	}
	return 0, false
}

// transition applies ev to s. Terminal states absorb every event.
func transition(s State, ev event) State {
	if s.Done() {
		return s
	}
	switch ev {
	case evInterrupt:
		return Cancelled
	case evQuit:
		if s == Running || s == Paused {
			return Finished
		}
	case evEndOfStream:
		if s == Running {
			return Finished
		}
	case evTogglePause:
		switch s {
		case Running:
			return Paused
		case Paused:
			return Running
		}
	}
	return s
}
