package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/maze"
	"github.com/muesli/termenv"
)

// FrameRenderer draws frames of a single maze as ASCII art.
// It implements domain.Renderer.
type FrameRenderer struct {
	maze    *maze.Maze
	out     io.Writer
	profile termenv.Profile
	clear   bool
	delay   time.Duration
	saveDir string
}

// FrameOption configures a FrameRenderer.
type FrameOption func(*FrameRenderer)

// WithOutput displays every frame on w.
func WithOutput(w io.Writer) FrameOption {
	return func(r *FrameRenderer) {
		r.out = w
		r.profile = ProfileFor(w)
		r.clear = IsTerminal(w)
	}
}

// WithProfile forces a color profile for displayed frames.
func WithProfile(p termenv.Profile) FrameOption {
	return func(r *FrameRenderer) {
		r.profile = p
	}
}

// WithDelay pauses after each displayed frame.
func WithDelay(d time.Duration) FrameOption {
	return func(r *FrameRenderer) {
		r.delay = d
	}
}

// WithSaveDir writes every frame as plain text into dir.
func WithSaveDir(dir string) FrameOption {
	return func(r *FrameRenderer) {
		r.saveDir = dir
	}
}

// NewFrameRenderer creates a renderer for m. Without options it does nothing.
func NewFrameRenderer(m *maze.Maze, opts ...FrameOption) *FrameRenderer {
	r := &FrameRenderer{maze: m, profile: termenv.Ascii}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render displays and/or saves the frame.
func (r *FrameRenderer) Render(ctx context.Context, f domain.Frame) error {
	if r.saveDir != "" {
		if err := r.save(f); err != nil {
			return err
		}
	}
	if r.out == nil {
		return nil
	}

	var b strings.Builder
	if r.clear {
		b.WriteString(termenv.CSI + termenv.EraseEntireScreenSeq + termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1))
	}
	b.WriteString(caption(f))
	b.WriteString("\n")
	b.WriteString(Draw(r.maze, f, r.profile))
	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return err
	}

	if r.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.delay):
		return nil
	}
}

// FrameFile is the file name a frame is saved under.
func FrameFile(f domain.Frame) string {
	if f.Final() {
		return "frame-final.txt"
	}
	return fmt.Sprintf("frame-%05d.txt", f.Step)
}

func (r *FrameRenderer) save(f domain.Frame) error {
	if err := os.MkdirAll(r.saveDir, 0755); err != nil {
		return fmt.Errorf("failed to ensure frame directory: %w", err)
	}
	content := caption(f) + "\n" + Draw(r.maze, f, termenv.Ascii)
	if err := os.WriteFile(filepath.Join(r.saveDir, FrameFile(f)), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

func caption(f domain.Frame) string {
	name := f.Maze
	if name == "" {
		name = "maze"
	}
	if f.Final() {
		return fmt.Sprintf("%s | final | steps: %d | path: %d", name, f.Step, len(f.Path))
	}
	return fmt.Sprintf("%s | step %s | %s facing %s", name, f.Label, f.Runner.Position, f.Runner.Orientation)
}

var arrows = map[domain.Orientation]string{
	domain.North: "^",
	domain.East:  ">",
	domain.South: "v",
	domain.West:  "<",
}

// Draw renders the maze with the runner, the goal and the cells visited so far.
// On the final frame the simplified path is highlighted instead of the trace.
func Draw(m *maze.Maze, f domain.Frame, p termenv.Profile) string {
	visited := make(map[domain.Coord]bool, len(f.Trace))
	for _, c := range f.Trace {
		visited[c] = true
	}
	onPath := make(map[domain.Coord]bool, len(f.Path))
	for _, c := range f.Path {
		onPath[c] = true
	}

	style := func(s, color string) string {
		return p.String(s).Foreground(p.Color(color)).String()
	}

	cell := func(c domain.Coord) string {
		switch {
		case c == f.Runner.Position:
			return p.String(arrows[f.Runner.Orientation]).Foreground(p.Color("#facc15")).Bold().String()
		case c == f.Goal:
			return style("G", "#4ade80")
		case onPath[c]:
			return style("*", "#22d3ee")
		case visited[c] && !f.Final():
			return style(".", "#64748b")
		default:
			return " "
		}
	}

	var b strings.Builder
	hline := func(line int) {
		for x := 0; x < m.Width(); x++ {
			b.WriteString("+")
			if m.HasHorizontalWall(x, line) {
				b.WriteString("---")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("+\n")
	}

	for y := m.Height() - 1; y >= 0; y-- {
		hline(y + 1)
		for x := 0; x <= m.Width(); x++ {
			if m.HasVerticalWall(x, y) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
			if x < m.Width() {
				b.WriteString(" " + cell(domain.Coord{X: x, Y: y}) + " ")
			}
		}
		b.WriteString("\n")
	}
	hline(0)
	return b.String()
}
