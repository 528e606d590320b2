package domain

// Walls holds the absolute wall flags around a cell.
type Walls struct {
	North bool `json:"north"`
	East  bool `json:"east"`
	South bool `json:"south"`
	West  bool `json:"west"`
}

// Side returns the flag for the wall on side o.
func (w Walls) Side(o Orientation) bool {
	switch o {
	case North:
		return w.North
	case East:
		return w.East
	case South:
		return w.South
	case West:
		return w.West
	}
	return false
}

// Relative rotates the absolute flags into the frame of a runner facing heading.
func (w Walls) Relative(heading Orientation) Sensed {
	return Sensed{
		Left:  w.Side(heading.Left()),
		Front: w.Side(heading),
		Right: w.Side(heading.Right()),
	}
}

// Sensed holds the wall flags as seen by the runner.
type Sensed struct {
	Left  bool `json:"left"`
	Front bool `json:"front"`
	Right bool `json:"right"`
}
