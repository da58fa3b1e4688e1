package driver

import "time"

// Stage identifies a front-end pipeline stage.
type Stage uint8

const (
	StageTokenize Stage = iota
	StageParse
)

// Status reports where a file is within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is a progress notification for one file. Events with an empty
// File describe the run as a whole.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// emit sends an event when a sink is attached.
func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}

// PhaseStatus reports whether a timing phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted by the directory drivers.
type PhaseObserver func(PhaseEvent)

// observePhase wraps a phase with start/end events and returns its result.
func observePhase[T any](obs PhaseObserver, name string, run func() T) T {
	if obs == nil {
		return run()
	}
	obs(PhaseEvent{Name: name, Status: PhaseStart})
	start := time.Now()
	out := run()
	obs(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
	return out
}
