package store

import "maps"

// State is the store's key/value mapping.
type State map[string]any

// Clone returns a shallow copy of s. The copy of a nil State is empty.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	return maps.Clone(s)
}

// Patch describes an optional state update carried by Emit.
// Use Merge for a fixed mapping and Update to derive one from current state.
// A nil Patch leaves state untouched.
type Patch interface {
	resolve(current State) State
}

type mergePatch State

func (p mergePatch) resolve(State) State { return State(p) }

type updatePatch func(State) State

func (p updatePatch) resolve(current State) State {
	if p == nil {
		return nil
	}
	return p(current)
}

// Merge returns a Patch that shallow-merges partial into state.
func Merge(partial State) Patch {
	return mergePatch(partial)
}

// Update returns a Patch computed from a snapshot of the current state.
// Returning nil from fn means no state change.
func Update(fn func(State) State) Patch {
	return updatePatch(fn)
}
