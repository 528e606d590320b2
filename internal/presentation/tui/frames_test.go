package tui_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/mazerunner/internal/presentation/tui"
	"github.com/aretw0/mazerunner/internal/runtime"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/maze"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadEnd(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(2, 2)
	require.NoError(t, err)
	m.AddVerticalWall(1, 1)
	m.SetName("dead-end")
	return m
}

func TestDraw(t *testing.T) {
	m := deadEnd(t)

	t.Run("Initial Frame", func(t *testing.T) {
		f := domain.Frame{
			Runner: domain.RunnerState{Position: domain.Coord{}, Orientation: domain.North},
			Goal:   domain.Coord{X: 1, Y: 1},
			Label:  "0",
			Trace:  []domain.Coord{{}},
		}
		want := strings.Join([]string{
			"+---+---+",
			"|   | G |",
			"+   +   +",
			"| ^     |",
			"+---+---+",
			"",
		}, "\n")
		assert.Equal(t, want, tui.Draw(m, f, termenv.Ascii))
	})

	t.Run("Final Frame Shows Path", func(t *testing.T) {
		f := domain.Frame{
			Runner: domain.RunnerState{Position: domain.Coord{X: 1, Y: 1}, Orientation: domain.North},
			Goal:   domain.Coord{X: 1, Y: 1},
			Label:  domain.FinalLabel,
			Trace:  []domain.Coord{{}, {Y: 1}, {}, {X: 1}, {X: 1, Y: 1}},
			Path:   []domain.Coord{{}, {X: 1}, {X: 1, Y: 1}},
		}
		want := strings.Join([]string{
			"+---+---+",
			"|   | ^ |",
			"+   +   +",
			"| *   * |",
			"+---+---+",
			"",
		}, "\n")
		assert.Equal(t, want, tui.Draw(m, f, termenv.Ascii))
	})
}

func TestFrameRenderer_SaveAndDisplay(t *testing.T) {
	m := deadEnd(t)
	dir := filepath.Join(t.TempDir(), "frames")
	var out bytes.Buffer

	renderer := tui.NewFrameRenderer(m, tui.WithOutput(&out), tui.WithSaveDir(dir))
	engine := runtime.NewEngine(runtime.WithRenderer(renderer))

	run, err := engine.Run(context.Background(), m, runtime.Request{Start: domain.Coord{}, Goal: domain.Coord{X: 1, Y: 1}})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, run.Steps()+2)

	final, err := os.ReadFile(filepath.Join(dir, "frame-final.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(final), "dead-end | final | steps: 4 | path: 3\n"))

	// A bytes.Buffer is not a terminal: no escape sequences.
	assert.NotContains(t, out.String(), "\x1b[")
	assert.Equal(t, run.Steps()+2, strings.Count(out.String(), "dead-end |"))
}

func TestFrameRenderer_DelayHonorsContext(t *testing.T) {
	m := deadEnd(t)
	renderer := tui.NewFrameRenderer(m, tui.WithOutput(&bytes.Buffer{}), tui.WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := renderer.Render(ctx, domain.Frame{Label: "0"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFrameFile(t *testing.T) {
	assert.Equal(t, "frame-00012.txt", tui.FrameFile(domain.Frame{Step: 12, Label: "12"}))
	assert.Equal(t, "frame-final.txt", tui.FrameFile(domain.Frame{Step: 12, Label: domain.FinalLabel}))
}

func TestReport(t *testing.T) {
	run := &domain.Run{
		ID:       "abc",
		MazeName: "maze1.mz",
		Width:    2,
		Height:   2,
		Goal:     domain.Coord{X: 1, Y: 1},
		Moves: []domain.Move{
			{Step: 1, Action: domain.ActionForward},
			{Step: 2, Action: domain.ActionTurnAround},
			{Step: 3, Action: domain.ActionLeftForward},
			{Step: 4, Action: domain.ActionLeftForward},
		},
		Path: []domain.Coord{{}, {X: 1}, {X: 1, Y: 1}},
	}

	md := tui.Report(run)
	assert.Contains(t, md, "# Run of maze1.mz")
	assert.Contains(t, md, "| Score | 4.0 |")
	assert.Contains(t, md, "(0, 0), (1, 0), (1, 1)")
	assert.Contains(t, md, "`FLLFLFLF`")

	// Without a markdown renderer the raw report is returned.
	assert.Equal(t, md, tui.RenderReport(run, nil))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| |_| |_|")
}
