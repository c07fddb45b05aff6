package calendar

import (
	"testing"
)

func TestPlacePrefersBelow(t *testing.T) {
	pos := Place(
		Rect{X: 10, Y: 5, W: 12, H: 1},
		Size{W: 80, H: 40},
		Size{W: 25, H: 10},
		1, 0,
	)
	if pos.Y != 6 {
		t.Errorf("y = %d, want 6 (directly below the anchor)", pos.Y)
	}
	if pos.X != 10 {
		t.Errorf("x = %d, want 10", pos.X)
	}
}

func TestPlaceFallsBackAbove(t *testing.T) {
	// Anchor near the bottom: below does not fit, above does.
	pos := Place(
		Rect{X: 10, Y: 35, W: 12, H: 1},
		Size{W: 80, H: 40},
		Size{W: 25, H: 10},
		1, 0,
	)
	if pos.Y != 25 {
		t.Errorf("y = %d, want 25 (popup bottom touching the anchor)", pos.Y)
	}
}

func TestPlacePinsToViewportBottom(t *testing.T) {
	// Tiny viewport: neither side fits, pin to the bottom offset.
	pos := Place(
		Rect{X: 0, Y: 4, W: 12, H: 1},
		Size{W: 80, H: 12},
		Size{W: 25, H: 10},
		1, 0,
	)
	if pos.Y != 1 {
		t.Errorf("y = %d, want 1 (viewport height - popup - margin)", pos.Y)
	}
}

func TestPlaceClampsHorizontally(t *testing.T) {
	// Anchor near the right edge pushes the popup back inside.
	pos := Place(
		Rect{X: 70, Y: 5, W: 12, H: 1},
		Size{W: 80, H: 40},
		Size{W: 25, H: 10},
		1, 0,
	)
	if want := 80 - 25 - 1; pos.X != want {
		t.Errorf("x = %d, want %d", pos.X, want)
	}

	// Anchor at the left edge clamps to the margin.
	pos = Place(
		Rect{X: 0, Y: 5, W: 12, H: 1},
		Size{W: 80, H: 40},
		Size{W: 25, H: 10},
		1, 0,
	)
	if pos.X != 1 {
		t.Errorf("x = %d, want margin 1", pos.X)
	}
}
