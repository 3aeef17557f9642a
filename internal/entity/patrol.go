package entity

// PatrolState is the phase of a patroller's move/wait cycle.
type PatrolState int

const (
	PatrolMoving PatrolState = iota
	PatrolWaiting
)

// String returns the state name.
func (s PatrolState) String() string {
	switch s {
	case PatrolMoving:
		return "moving"
	case PatrolWaiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// Patrol timing in ticks.
const (
	PatrolSpeed        = 1.5
	PatrolMoveTicks    = 60
	PatrolWaitTicks    = 30
	PatrolFrameTicks   = 10
	PatrolFrameCount   = 4
	patrolDirectionCnt = len(Directions)
)

// DirectionPicker chooses the next heading; *rand.Rand satisfies it.
type DirectionPicker interface {
	Intn(n int) int
}

// Patroller is a scenery NPC that walks for a while, stops, turns, repeats.
type Patroller struct {
	ID     string
	X, Y   float64
	Facing Direction
	State  PatrolState
	Frame  int

	counter     int
	animCounter int
}

// NewPatroller creates a patroller at the given position, moving down.
func NewPatroller(id string, x, y float64) *Patroller {
	return &Patroller{
		ID:     id,
		X:      x,
		Y:      y,
		Facing: DirDown,
		State:  PatrolMoving,
	}
}

// Advance runs one tick. A new direction is drawn when the patroller
// stops; it is applied once moving resumes.
func (p *Patroller) Advance(rng DirectionPicker) {
	p.counter++
	switch p.State {
	case PatrolMoving:
		if p.counter >= PatrolMoveTicks {
			p.State = PatrolWaiting
			p.counter = 0
			p.Facing = Directions[rng.Intn(patrolDirectionCnt)]
		}
	case PatrolWaiting:
		if p.counter >= PatrolWaitTicks {
			p.State = PatrolMoving
			p.counter = 0
		}
	}

	if p.State == PatrolMoving {
		dx, dy := p.Facing.Delta()
		p.X += dx * PatrolSpeed
		p.Y += dy * PatrolSpeed
	}

	p.animCounter++
	if p.animCounter >= PatrolFrameTicks {
		p.animCounter = 0
		p.Frame = (p.Frame + 1) % PatrolFrameCount
	}
}

// Clamp keeps the patroller inside [minX,maxX] x [minY,maxY].
func (p *Patroller) Clamp(minX, minY, maxX, maxY float64) {
	p.X = max(minX, min(maxX, p.X))
	p.Y = max(minY, min(maxY, p.Y))
}
