package history

import (
	"fmt"
	"testing"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func style(fg string) entity.StyleConfig {
	return entity.StyleConfig{Foreground: fg, Size: 300}
}

func TestPushSkipsConsecutiveDuplicates(t *testing.T) {
	s := New(0)
	s.Push(style("#000"))
	before := s.Len()
	s.Push(style("#111"))
	s.Push(style("#111"))
	assert.Equal(t, before+1, s.Len())

	// non-consecutive duplicates are kept
	s.Push(style("#000"))
	assert.Equal(t, 3, s.Len())
}

func TestUndoNeedsTwoEntries(t *testing.T) {
	s := New(5)
	assert.Nil(t, s.Undo())
	assert.False(t, s.CanUndo())

	s.Push(style("#000"))
	assert.Nil(t, s.Undo())
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.CanUndo())
}

func TestUndoReturnsPrevious(t *testing.T) {
	s := New(5)
	s.Push(style("#000"))
	s.Push(style("#111"))
	s.Push(style("#222"))
	require.True(t, s.CanUndo())

	prev := s.Undo()
	require.NotNil(t, prev)
	assert.Equal(t, "#111", prev.Foreground)
	assert.Equal(t, 2, s.Len())

	// dedup marker follows the new top
	s.Push(style("#111"))
	assert.Equal(t, 2, s.Len())

	prev = s.Undo()
	require.NotNil(t, prev)
	assert.Equal(t, "#000", prev.Foreground)
	assert.False(t, s.CanUndo())
}

func TestBoundEvictsOldest(t *testing.T) {
	s := New(3)
	for i := 0; i < 5; i++ {
		s.Push(style(fmt.Sprintf("#%03d", i)))
		assert.LessOrEqual(t, s.Len(), 3)
	}
	assert.Equal(t, 3, s.Len())

	assert.Equal(t, "#003", s.Undo().Foreground)
	assert.Equal(t, "#002", s.Undo().Foreground)
	assert.Nil(t, s.Undo())
}

func TestDefaultLimit(t *testing.T) {
	s := New(-1)
	for i := 0; i < DefaultLimit+10; i++ {
		s.Push(style(fmt.Sprintf("#%03d", i)))
	}
	assert.Equal(t, DefaultLimit, s.Len())
}

func TestClear(t *testing.T) {
	s := New(5)
	s.Push(style("#000"))
	s.Push(style("#111"))
	s.Clear()
	assert.Zero(t, s.Len())

	s.Push(style("#111"))
	assert.Equal(t, 1, s.Len())
}

func TestSnapshotRestore(t *testing.T) {
	s := New(2)
	s.Push(style("#000"))
	s.Push(style("#111"))

	restored := New(2)
	restored.Restore(append(s.Snapshot(), s.Snapshot()[0]))
	assert.Equal(t, 2, restored.Len())
	assert.Equal(t, "#111", restored.Undo().Foreground)
}
