package domain

// Runner is the simulated agent: a grid position and a compass heading.
// Its fields are unexported so the only mutations are Turn and Advance.
type Runner struct {
	pos     Coord
	heading Orientation
}

// NewRunner places a runner at start facing heading.
func NewRunner(start Coord, heading Orientation) *Runner {
	return &Runner{pos: start, heading: heading}
}

// Position returns the current cell.
func (r *Runner) Position() Coord {
	return r.pos
}

// Orientation returns the current heading.
func (r *Runner) Orientation() Orientation {
	return r.heading
}

// Turn rotates the heading one step. Position is unchanged.
func (r *Runner) Turn(dir Turn) {
	if dir == TurnLeft {
		r.heading = r.heading.Left()
		return
	}
	r.heading = r.heading.Right()
}

// Advance moves one cell along the heading. It performs no bounds or wall
// checks; callers must sense the front wall first.
func (r *Runner) Advance() {
	r.pos = r.pos.Add(r.heading.Delta())
}

// RunnerState is a read-only copy of a Runner, safe to hand to collaborators.
type RunnerState struct {
	Position    Coord       `json:"position"`
	Orientation Orientation `json:"orientation"`
}

// State returns a copy of the runner that later mutations will not affect.
func (r *Runner) State() RunnerState {
	return RunnerState{Position: r.pos, Orientation: r.heading}
}
