package core

import "testing"

func TestLocationNeighbors(t *testing.T) {
	n := L(4, 4).Neighbors()
	expected := [4]Location{L(3, 4), L(4, 3), L(5, 4), L(4, 5)}
	if n != expected {
		t.Errorf("Neighbors() = %v, expected %v", n, expected)
	}
}

func TestLocationInBounds(t *testing.T) {
	tests := []struct {
		name     string
		loc      Location
		expected bool
	}{
		{"origin", L(0, 0), true},
		{"far corner", L(9, 9), true},
		{"negative row", L(-1, 0), false},
		{"negative column", L(0, -1), false},
		{"row past edge", L(10, 0), false},
		{"column past edge", L(0, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.loc.InBounds(10, 10); got != tc.expected {
				t.Errorf("InBounds(10, 10) for %v = %v, expected %v", tc.loc, got, tc.expected)
			}
		})
	}
}

func TestLocationEquality(t *testing.T) {
	a := L(2, 3)
	b := Location{Row: 2, Column: 3}
	if a != b {
		t.Errorf("%v and %v should be equal", a, b)
	}
	if a.Add(0, 1) == b {
		t.Error("Add should return a different location")
	}
	if a != L(2, 3) {
		t.Error("Add must not mutate the receiver")
	}
}

func TestLocationLabel(t *testing.T) {
	tests := []struct {
		loc      Location
		expected string
	}{
		{L(0, 0), "A1"},
		{L(6, 2), "C7"},
		{L(9, 9), "J10"},
	}

	for _, tc := range tests {
		if got := tc.loc.Label(); got != tc.expected {
			t.Errorf("Label() for %v = %q, expected %q", tc.loc, got, tc.expected)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestPlayerOther(t *testing.T) {
	if Player1.Other() != Player2 || Player2.Other() != Player1 {
		t.Error("Other() should swap Player1 and Player2")
	}
	if NoPlayer.Other() != NoPlayer {
		t.Error("NoPlayer.Other() should be NoPlayer")
	}
}

func TestAttackOutcomeString(t *testing.T) {
	if got := Miss().String(); got != "Miss" {
		t.Errorf("Miss().String() = %q", got)
	}
	if got := Destroyed("Destroyer", 3).String(); got != "Destroyed Destroyer" {
		t.Errorf("Destroyed().String() = %q", got)
	}
}
