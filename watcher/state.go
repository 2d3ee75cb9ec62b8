// SPDX-License-Identifier: GPL-3.0-or-later
package watcher

type State int

const (
	Stopped = State(iota)
	Connecting
	Waiting
	Polling
	Processing
	Error
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Waiting:
		return "waiting"
	case Polling:
		return "polling"
	case Processing:
		return "processing"
	case Error:
		return "error"
	}
	return "stopped"
}

// Mode is the detection mechanism used while connected.
type Mode int

const (
	ModeIdle = Mode(iota)
	ModePolling
)

func (m Mode) String() string {
	if m == ModeIdle {
		return "idle"
	}
	return "polling"
}

type Stats struct {
	State       State
	Mode        Mode
	UidValidity uint32
	Cursor      uint32
	DedupSize   int
	Detected    int
	Failures    int
	IdleErrors  int
}
