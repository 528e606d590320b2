package domain

import (
	"encoding/json"
	"fmt"
)

// Orientation is a compass heading. The cyclic order is N -> E -> S -> W -> N.
type Orientation int

const (
	North Orientation = iota
	East
	South
	West
)

// Orientations lists every heading in cyclic order.
var Orientations = [4]Orientation{North, East, South, West}

var orientationNames = [4]string{"N", "E", "S", "W"}

// Left returns the predecessor in the cycle.
func (o Orientation) Left() Orientation {
	return (o + 3) % 4
}

// Right returns the successor in the cycle.
func (o Orientation) Right() Orientation {
	return (o + 1) % 4
}

// Reverse returns the opposite heading.
func (o Orientation) Reverse() Orientation {
	return (o + 2) % 4
}

// Delta is the unit step taken when advancing with this heading.
func (o Orientation) Delta() Coord {
	switch o {
	case North:
		return Coord{Y: 1}
	case East:
		return Coord{X: 1}
	case South:
		return Coord{Y: -1}
	case West:
		return Coord{X: -1}
	}
	return Coord{}
}

// Valid reports whether o is one of the four headings.
func (o Orientation) Valid() bool {
	return o >= North && o <= West
}

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// ParseOrientation accepts "N", "E", "S" or "W".
func ParseOrientation(s string) (Orientation, error) {
	for i, name := range orientationNames {
		if name == s {
			return Orientation(i), nil
		}
	}
	return North, fmt.Errorf("unknown orientation %q", s)
}

// MarshalJSON encodes the heading as its letter.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes a heading letter.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Turn is a quarter rotation.
type Turn int

const (
	TurnLeft Turn = iota
	TurnRight
)

func (t Turn) String() string {
	if t == TurnLeft {
		return "Left"
	}
	return "Right"
}
