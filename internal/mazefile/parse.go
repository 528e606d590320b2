// Package mazefile reads and writes the .mz text format.
//
// A maze of width W and height H is drawn with 2H+1 lines of 2W+1 characters,
// '#' for wall and '.' for open. Even lines (from the top) carry horizontal wall
// segments at odd columns, odd lines carry vertical walls at even columns, and
// every even/even position is a '#' intersection.
package mazefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/mazerunner/pkg/maze"
)

// ErrInvalidMaze is wrapped by every ParseError.
var ErrInvalidMaze = errors.New("invalid maze file")

// ParseError locates a problem in a .mz file. Line and Column are 1-based; zero means unknown.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	default:
		return e.Msg
	}
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidMaze
}

func errAt(line, col int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

// ParseFile opens path and parses it. The maze is named after the file.
func ParseFile(path string) (*maze.Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maze file: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	m.SetName(filepath.Base(path))
	return m, nil
}

// ParseString parses an in-memory .mz document.
func ParseString(s string) (*maze.Maze, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a .mz document. Surrounding whitespace on each line and trailing
// blank lines are ignored.
func Parse(r io.Reader) (*maze.Maze, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if err := validate(lines); err != nil {
		return nil, err
	}

	height := len(lines) / 2
	width := len(lines[0]) / 2

	m, err := maze.New(width, height)
	if err != nil {
		return nil, err
	}

	for y := 0; y <= height; y++ {
		row := lines[2*y]
		for x := 0; x < width; x++ {
			if row[2*x] != '#' {
				return nil, errAt(2*y+1, 2*x+1, "wall intersection must be '#'")
			}
			if row[2*x+1] == '#' {
				m.AddHorizontalWall(x, height-y)
			}
		}
	}

	for y := 0; y < height; y++ {
		row := lines[2*y+1]
		for x := 0; x <= width; x++ {
			if row[2*x] == '#' {
				m.AddVerticalWall(x, height-y-1)
			}
		}
	}

	return m, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func validate(lines []string) error {
	if len(lines) == 0 {
		return errAt(0, 0, "empty maze file")
	}

	cols := len(lines[0])
	for i, line := range lines {
		if len(line) != cols {
			return errAt(i+1, 0, "expected %d columns, got %d (missing a column?)", cols, len(line))
		}
	}
	if len(lines)%2 != 1 {
		return errAt(len(lines), 0, "even number of lines (missing a row?)")
	}
	if cols%2 != 1 {
		return errAt(1, 0, "even number of columns (missing a column?)")
	}
	if len(lines) < 3 || cols < 3 {
		return errAt(0, 0, "maze must be at least 3x3 characters, got %dx%d", cols, len(lines))
	}

	for _, i := range []int{0, len(lines) - 1} {
		if j := strings.IndexFunc(lines[i], func(c rune) bool { return c != '#' }); j >= 0 {
			return errAt(i+1, j+1, "outer horizontal wall must be all '#'")
		}
	}

	for i, line := range lines {
		if line[0] != '#' || line[cols-1] != '#' {
			return errAt(i+1, 0, "missing outer vertical wall")
		}
		for j := 0; j < cols; j++ {
			if c := line[j]; c != '#' && c != '.' {
				return errAt(i+1, j+1, "invalid character %q", c)
			}
		}
	}
	return nil
}
