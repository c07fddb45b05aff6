package calendar

// Rect describes the anchor the popup attaches to, in viewport cells
type Rect struct {
	X, Y, W, H int
}

// Size describes viewport or popup dimensions
type Size struct {
	W, H int
}

// Point is the computed top-left position for the popup
type Point struct {
	X, Y int
}

// Place positions a popup of the given size relative to its anchor
// inside the viewport. Placement prefers below the anchor when the
// popup fits before the viewport bottom minus the safety margin, then
// above, and otherwise pins the popup at a fixed offset from the
// viewport bottom. The horizontal position is clamped so the popup
// never leaves [margin, viewportW - popupW - margin]. Callers recompute
// on open, resize, and scroll.
func Place(anchor Rect, viewport, popup Size, margin, gap int) Point {
	var y int
	below := anchor.Y + anchor.H + gap
	above := anchor.Y - gap - popup.H

	switch {
	case below+popup.H <= viewport.H-margin:
		y = below
	case above >= margin:
		y = above
	default:
		y = viewport.H - popup.H - margin
	}
	if y < 0 {
		y = 0
	}

	x := anchor.X
	maxX := viewport.W - popup.W - margin
	if x > maxX {
		x = maxX
	}
	if x < margin {
		x = margin
	}

	return Point{X: x, Y: y}
}
