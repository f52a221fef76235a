// internal/carousel/state.go
package carousel

import "fmt"

// State is an immutable snapshot of which item is displayed.
// Invariant: 0 <= Index < Len.
type State struct {
	Index int `json:"index"`
	Len   int `json:"len"`
}

func NewState(n int) (State, error) {
	if n < 1 {
		return State{}, ErrNoItems
	}
	return State{Index: 0, Len: n}, nil
}

// Advance moves to the next item, wrapping to the first.
func (s State) Advance() State {
	s.Index = (s.Index + 1) % s.Len
	return s
}

// Retreat moves to the previous item, wrapping to the last.
func (s State) Retreat() State {
	s.Index = (s.Index - 1 + s.Len) % s.Len
	return s
}

// JumpTo selects item i directly. The receiver is returned unchanged on error.
func (s State) JumpTo(i int) (State, error) {
	if i < 0 || i >= s.Len {
		return s, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, s.Len)
	}
	s.Index = i
	return s, nil
}

// Resize rebinds the state to a sequence of length n. The index survives
// when it is still valid and falls back to the first item otherwise.
func (s State) Resize(n int) (State, error) {
	if n < 1 {
		return s, ErrNoItems
	}
	if s.Index >= n {
		return State{Index: 0, Len: n}, nil
	}
	return State{Index: s.Index, Len: n}, nil
}
