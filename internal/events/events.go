// Package events defines the tagged event union flowing from the worker
// goroutines to the coordinator: one sealed interface, one concrete type
// per variant.
package events

import "github.com/rileyhilliard/cgtop/internal/cgroup"

// Event is the sealed union of everything a producer can publish on the
// bus. Switching on the concrete type is exhaustive by construction.
type Event interface {
	isEvent()
}

// Update carries a complete snapshot from the collection worker. Ownership
// of the snapshot transfers with the event; it is read-only from then on.
type Update struct {
	Snapshot *cgroup.Snapshot
}

// Clean asks the coordinator to prune retained history beyond the current
// snapshot. Emitted by the cleanup worker on its own cadence.
type Clean struct{}

// KeyInput carries a decoded user intent from the input worker.
type KeyInput struct {
	Intent Intent
}

// Terminate asks the coordinator to begin shutdown. Once observed, no
// further events are drained.
type Terminate struct{}

func (Update) isEvent()    {}
func (Clean) isEvent()     {}
func (KeyInput) isEvent()  {}
func (Terminate) isEvent() {}

// Intent is a navigation or control intent decoded from raw input.
type Intent int

const (
	IntentNone Intent = iota
	IntentQuit
	IntentUp
	IntentDown
	IntentToggle
	IntentCollapse
	IntentParent
	IntentRefresh
	IntentHelp
)

// String returns a human-readable label, used in debug logs.
func (i Intent) String() string {
	switch i {
	case IntentQuit:
		return "quit"
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	case IntentToggle:
		return "toggle"
	case IntentCollapse:
		return "collapse"
	case IntentParent:
		return "parent"
	case IntentRefresh:
		return "refresh"
	case IntentHelp:
		return "help"
	default:
		return "none"
	}
}
