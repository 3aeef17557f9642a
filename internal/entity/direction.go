package entity

// Direction is a facing on the map.
type Direction int

const (
	DirDown Direction = iota
	DirLeft
	DirRight
	DirUp
)

// Directions lists every facing in sprite-sheet row order.
var Directions = [...]Direction{DirDown, DirLeft, DirRight, DirUp}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// Delta returns the unit step for this direction (y grows downwards).
func (d Direction) Delta() (float64, float64) {
	switch d {
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	default:
		return 0, 0
	}
}
