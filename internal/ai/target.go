package ai

import (
	"slices"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// Target is a candidate shot plus the hit that caused it to be queued.
// Source is a coordinate key, not a reference; HasSource is false for shots
// chosen by free search.
type Target struct {
	ShotAt    core.Location
	Source    core.Location
	HasSource bool
}

// SameRow reports whether the target lies on its source's row.
func (t Target) SameRow() bool {
	return t.HasSource && t.ShotAt.Row == t.Source.Row
}

// SameColumn reports whether the target lies on its source's column.
func (t Target) SameColumn() bool {
	return t.HasSource && t.ShotAt.Column == t.Source.Column
}

// targetStack is a LIFO of pending targets. The last element is the top.
type targetStack []Target

func (s *targetStack) push(t Target) {
	*s = append(*s, t)
}

func (s *targetStack) pop() (Target, bool) {
	n := len(*s)
	if n == 0 {
		return Target{}, false
	}
	t := (*s)[n-1]
	*s = (*s)[:n-1]
	return t, true
}

// filter keeps the targets for which keep returns true, in their current order.
func (s *targetStack) filter(keep func(Target) bool) {
	*s = slices.DeleteFunc(*s, func(t Target) bool { return !keep(t) })
}

// promote moves every target matching match to the top of the stack.
// Matches keep their relative order, and so do non-matches.
func (s *targetStack) promote(match func(Target) bool) {
	rest := make([]Target, 0, len(*s))
	var top []Target
	for _, t := range *s {
		if match(t) {
			top = append(top, t)
		} else {
			rest = append(rest, t)
		}
	}
	*s = append(rest, top...)
}

// topFirst returns a copy of the stack in pop order.
func (s targetStack) topFirst() []Target {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}
