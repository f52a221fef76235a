package carousel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateRejectsEmptySequence(t *testing.T) {
	_, err := NewState(0)
	assert.ErrorIs(t, err, ErrNoItems)

	st, err := NewState(3)
	require.NoError(t, err)
	assert.Equal(t, State{Index: 0, Len: 3}, st)
}

func TestAdvanceCyclesThroughEveryIndex(t *testing.T) {
	for n := 1; n <= 9; n++ {
		for start := 0; start < n; start++ {
			st := State{Index: start, Len: n}
			seen := map[int]bool{}
			for step := 0; step < n; step++ {
				seen[st.Index] = true
				st = st.Advance()
				require.True(t, st.Index >= 0 && st.Index < n, "index %d escaped [0,%d)", st.Index, n)
			}
			assert.Equal(t, start, st.Index, "n=%d start=%d", n, start)
			assert.Len(t, seen, n)
		}
	}
}

func TestRetreatInvertsAdvance(t *testing.T) {
	for n := 1; n <= 9; n++ {
		for i := 0; i < n; i++ {
			st := State{Index: i, Len: n}
			assert.Equal(t, st, st.Advance().Retreat())
			assert.Equal(t, st, st.Retreat().Advance())
		}
	}
}

func TestRetreatWrapsToLast(t *testing.T) {
	st := State{Index: 0, Len: 8}
	assert.Equal(t, 7, st.Retreat().Index)
}

func TestJumpTo(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for from := 0; from < n; from++ {
			for target := 0; target < n; target++ {
				st, err := State{Index: from, Len: n}.JumpTo(target)
				require.NoError(t, err)
				assert.Equal(t, target, st.Index)
			}
		}
	}
}

func TestJumpToOutOfRangeKeepsState(t *testing.T) {
	orig := State{Index: 2, Len: 4}
	for _, bad := range []int{-1, 4, 100} {
		st, err := orig.JumpTo(bad)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		assert.Equal(t, orig, st)
	}
}

func TestResize(t *testing.T) {
	st, err := State{Index: 2, Len: 4}.Resize(6)
	require.NoError(t, err)
	assert.Equal(t, State{Index: 2, Len: 6}, st)

	st, err = State{Index: 5, Len: 6}.Resize(3)
	require.NoError(t, err)
	assert.Equal(t, State{Index: 0, Len: 3}, st)

	_, err = State{Index: 0, Len: 1}.Resize(0)
	assert.ErrorIs(t, err, ErrNoItems)
}
