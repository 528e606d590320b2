/*
Package maze provides the wall topology of a rectangular maze and the buffer
that records an exploration through it.

Walls live on grid lines. A horizontal wall (x, line) lies on the horizontal
line at height `line` and spans column x; a vertical wall (line, y) lies on the
vertical line at `line` and spans row y. The four boundary walls are always
present. Interior walls are added through bounds-checked insertion that
silently ignores out-of-range requests.
*/
package maze

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/mazerunner/pkg/domain"
)

// ErrInvalidDimensions is returned when width or height is below 1.
var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// Segment is a wall position: (x, line) for horizontal walls, (line, y) for vertical walls.
type Segment [2]int

// Maze owns the walls and the exploration trace of a single run.
// It is not safe for concurrent use; each run owns its Maze.
type Maze struct {
	name   string
	width  int
	height int
	hWalls map[Segment]struct{}
	vWalls map[Segment]struct{}
	trace  []domain.Coord
}

// New creates a fully enclosed maze with no interior walls.
func New(width, height int) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	m := &Maze{
		width:  width,
		height: height,
		hWalls: make(map[Segment]struct{}, 2*width),
		vWalls: make(map[Segment]struct{}, 2*height),
	}

	for y := 0; y < height; y++ {
		m.vWalls[Segment{0, y}] = struct{}{}
		m.vWalls[Segment{width, y}] = struct{}{}
	}
	for x := 0; x < width; x++ {
		m.hWalls[Segment{x, 0}] = struct{}{}
		m.hWalls[Segment{x, height}] = struct{}{}
	}

	return m, nil
}

// Width is the number of columns.
func (m *Maze) Width() int { return m.width }

// Height is the number of rows.
func (m *Maze) Height() int { return m.height }

// Name is a free-form label, usually the maze file name.
func (m *Maze) Name() string { return m.name }

// SetName sets the label reported with runs of this maze.
func (m *Maze) SetName(name string) { m.name = name }

// AddHorizontalWall adds an interior wall on horizontal line `line` spanning column x.
// Requests outside 0 <= x < width, 1 <= line < height are ignored.
func (m *Maze) AddHorizontalWall(x, line int) {
	if x < 0 || x >= m.width || line < 1 || line >= m.height {
		return
	}
	m.hWalls[Segment{x, line}] = struct{}{}
}

// AddVerticalWall adds an interior wall on vertical line `line` spanning row y.
// Requests outside 0 <= y < height, 1 <= line < width are ignored.
func (m *Maze) AddVerticalWall(line, y int) {
	if y < 0 || y >= m.height || line < 1 || line >= m.width {
		return
	}
	m.vWalls[Segment{line, y}] = struct{}{}
}

// HasHorizontalWall reports whether a wall lies on horizontal line `line` at column x.
func (m *Maze) HasHorizontalWall(x, line int) bool {
	_, ok := m.hWalls[Segment{x, line}]
	return ok
}

// HasVerticalWall reports whether a wall lies on vertical line `line` at row y.
func (m *Maze) HasVerticalWall(line, y int) bool {
	_, ok := m.vWalls[Segment{line, y}]
	return ok
}

// HorizontalWalls returns every horizontal wall, sorted by line then x.
func (m *Maze) HorizontalWalls() []Segment {
	out := make([]Segment, 0, len(m.hWalls))
	for s := range m.hWalls {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][1] != out[j][1] {
			return out[i][1] < out[j][1]
		}
		return out[i][0] < out[j][0]
	})
	return out
}

// VerticalWalls returns every vertical wall, sorted by row then line.
func (m *Maze) VerticalWalls() []Segment {
	out := make([]Segment, 0, len(m.vWalls))
	for s := range m.vWalls {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][1] != out[j][1] {
			return out[i][1] < out[j][1]
		}
		return out[i][0] < out[j][0]
	})
	return out
}

// InBounds reports whether c is a cell of the maze.
func (m *Maze) InBounds(c domain.Coord) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

// WallsAt returns the absolute walls around c. A cell's north wall is the
// horizontal wall one line above it; its east wall is the vertical line to its right.
func (m *Maze) WallsAt(c domain.Coord) domain.Walls {
	return domain.Walls{
		North: m.HasHorizontalWall(c.X, c.Y+1),
		East:  m.HasVerticalWall(c.X+1, c.Y),
		South: m.HasHorizontalWall(c.X, c.Y),
		West:  m.HasVerticalWall(c.X, c.Y),
	}
}

// Sense returns the walls to the left, front and right of r.
func (m *Maze) Sense(r *domain.Runner) domain.Sensed {
	return m.WallsAt(r.Position()).Relative(r.Orientation())
}

// Record appends c to the exploration trace.
func (m *Maze) Record(c domain.Coord) {
	m.trace = append(m.trace, c)
}

// Trace returns a copy of the exploration trace.
func (m *Maze) Trace() []domain.Coord {
	out := make([]domain.Coord, len(m.trace))
	copy(out, m.trace)
	return out
}

// TraceView returns the recorded cells without copying. Its capacity equals its
// length, so later Record calls never change it; callers must not modify it.
func (m *Maze) TraceView() []domain.Coord {
	return m.trace[:len(m.trace):len(m.trace)]
}

// TraceLen is the number of recorded cells.
func (m *Maze) TraceLen() int {
	return len(m.trace)
}

// ResetTrace discards the exploration trace. Engines call it before every run.
func (m *Maze) ResetTrace() {
	m.trace = nil
}

// Clone returns a maze with the same walls and an empty trace.
func (m *Maze) Clone() *Maze {
	c := &Maze{
		name:   m.name,
		width:  m.width,
		height: m.height,
		hWalls: make(map[Segment]struct{}, len(m.hWalls)),
		vWalls: make(map[Segment]struct{}, len(m.vWalls)),
	}
	for s := range m.hWalls {
		c.hWalls[s] = struct{}{}
	}
	for s := range m.vWalls {
		c.vWalls[s] = struct{}{}
	}
	return c
}
