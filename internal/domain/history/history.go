package history

import (
	"encoding/json"
	"sync"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

// DefaultLimit is the number of styles kept when no limit is given.
const DefaultLimit = 20

// Stack is a bounded undo buffer of style snapshots. Consecutive duplicates
// are stored once. It is safe for concurrent use.
type Stack struct {
	mu      sync.Mutex
	entries []string
	last    string
	limit   int
}

func New(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push records style unless it equals the most recently pushed one.
func (s *Stack) Push(style entity.StyleConfig) {
	data, err := json.Marshal(style)
	if err != nil {
		return
	}
	serialized := string(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if serialized == s.last {
		return
	}
	s.entries = append(s.entries, serialized)
	if over := len(s.entries) - s.limit; over > 0 {
		s.entries = append([]string(nil), s.entries[over:]...)
	}
	s.last = serialized
}

// Undo drops the current style and returns the previous one. With fewer than
// two entries it returns nil and leaves the stack untouched.
func (s *Stack) Undo() *entity.StyleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) < 2 {
		return nil
	}
	top := s.entries[len(s.entries)-2]

	var style entity.StyleConfig
	if err := json.Unmarshal([]byte(top), &style); err != nil {
		return nil
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.last = top
	return &style
}

func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) >= 2
}

func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.last = ""
}

// Snapshot returns the serialized entries, oldest first.
func (s *Stack) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...)
}

// Restore replaces the content with entries previously returned by Snapshot,
// keeping only the newest ones that fit the limit.
func (s *Stack) Restore(entries []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if over := len(entries) - s.limit; over > 0 {
		entries = entries[over:]
	}
	s.entries = append([]string(nil), entries...)
	s.last = ""
	if len(s.entries) > 0 {
		s.last = s.entries[len(s.entries)-1]
	}
}
