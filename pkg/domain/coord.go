package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord identifies a cell of the grid. X grows to the east, Y grows to the north.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String renders the coordinate as "(x, y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// ParseCoord accepts "x, y", "x,y" or "(x, y)".
func ParseCoord(s string) (Coord, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("invalid coordinate %q: expected \"x, y\"", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("invalid x in coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("invalid y in coordinate %q: %w", s, err)
	}

	return Coord{X: x, Y: y}, nil
}

// FormatPath renders a path the way statistics files list it: "(0, 0), (0, 1)".
func FormatPath(path []Coord) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
