package entity

// Avatar is the player's body on the overworld.
type Avatar struct {
	X, Y   float64   // Pixel position in the current area
	Facing Direction // Last movement direction
	Symbol rune      // Display symbol
}

// NewAvatar creates an avatar at the given position, facing down.
func NewAvatar(x, y float64) *Avatar {
	return &Avatar{
		X:      x,
		Y:      y,
		Facing: DirDown,
		Symbol: '@',
	}
}

// Step moves the avatar by (dx, dy) pixels and updates its facing.
// Vertical input wins the facing when both axes move, as the key checks
// run left, right, up, down.
func (a *Avatar) Step(dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	switch {
	case dy > 0:
		a.Facing = DirDown
	case dy < 0:
		a.Facing = DirUp
	case dx > 0:
		a.Facing = DirRight
	default:
		a.Facing = DirLeft
	}
	a.X += dx
	a.Y += dy
	return true
}

// Position returns the current coordinates.
func (a *Avatar) Position() (float64, float64) {
	return a.X, a.Y
}

// MoveTo places the avatar at an absolute position.
func (a *Avatar) MoveTo(x, y float64) {
	a.X = x
	a.Y = y
}
