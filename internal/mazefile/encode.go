package mazefile

import (
	"bufio"
	"io"
	"strings"

	"github.com/aretw0/mazerunner/pkg/maze"
)

// Encode writes m in .mz format. Parse(Encode(m)) yields the same walls.
func Encode(w io.Writer, m *maze.Maze) error {
	bw := bufio.NewWriter(w)
	for _, line := range Lines(m) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeString is Encode into a string.
func EncodeString(m *maze.Maze) string {
	return strings.Join(Lines(m), "\n") + "\n"
}

// Lines renders the maze top row first.
func Lines(m *maze.Maze) []string {
	width, height := m.Width(), m.Height()
	lines := make([]string, 0, 2*height+1)

	var b strings.Builder
	for r := 0; r <= 2*height; r++ {
		b.Reset()
		for c := 0; c <= 2*width; c++ {
			b.WriteByte(glyph(m, r, c))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func glyph(m *maze.Maze, r, c int) byte {
	height := m.Height()
	switch {
	case r%2 == 0 && c%2 == 0:
		return '#'
	case r%2 == 0:
		if m.HasHorizontalWall(c/2, height-r/2) {
			return '#'
		}
	case c%2 == 0:
		if m.HasVerticalWall(c/2, height-r/2-1) {
			return '#'
		}
	}
	return '.'
}
