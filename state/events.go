package state

import "github.com/tailored-agentic-units/varstate/observability"

const (
	EventStateCreate observability.EventType = "state.create"
	EventVarSet      observability.EventType = "state.set_var"
	EventStateUpdate observability.EventType = "state.update"

	// Emitted when Set ignores, or SetStrict rejects, keys the state does not hold.
	EventUnknownKeys observability.EventType = "state.unknown_keys"
)
