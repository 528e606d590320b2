package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/mazerunner/internal/config"
	"github.com/aretw0/mazerunner/pkg/adapters/file"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deadEnd = "#####\n#.#.#\n#.#.#\n#...#\n#####\n"

func writeMaze(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dead-end.mz")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func solveOpts(t *testing.T, out, errOut *bytes.Buffer) SolveOptions {
	return SolveOptions{
		MazePath:  writeMaze(t, deadEnd),
		RunID:     "run-1",
		Overrides: Overrides{Store: config.StoreFile, OutDir: t.TempDir()},
		Out:       out,
		ErrOut:    errOut,
	}
}

func TestResolveEndpoint(t *testing.T) {
	def := domain.Coord{X: 1, Y: 1}
	inBounds := func(c domain.Coord) bool { return c.X >= 0 && c.X < 2 && c.Y >= 0 && c.Y < 2 }

	tests := []struct {
		name string
		raw  string
		want domain.Coord
		warn bool
	}{
		{"Empty", "", def, false},
		{"Valid", "(0, 1)", domain.Coord{Y: 1}, false},
		{"Malformed", "north", def, true},
		{"Out Of Range", "5, 0", def, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warn := resolveEndpoint(tt.raw, def, inBounds)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.warn, warn != "")
		})
	}
}

func TestSolve_ReportAndFileStore(t *testing.T) {
	var out, errOut bytes.Buffer
	opts := solveOpts(t, &out, &errOut)

	run, err := Solve(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "FLLFLFLF", run.Actions())

	assert.Contains(t, out.String(), "| Score | 4.0 |")
	assert.Contains(t, out.String(), "(0, 0), (1, 0), (1, 1)")
	assert.Contains(t, errOut.String(), "Run saved to")

	stats, err := os.ReadFile(filepath.Join(opts.Overrides.OutDir, "run-1", file.StatisticsFile))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(stats), "(0, 0), (1, 0), (1, 1)\n3"))
}

func TestSolve_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	opts := solveOpts(t, &out, &errOut)
	opts.JSON = true
	opts.Display = true

	_, err := Solve(context.Background(), opts)
	require.NoError(t, err)

	var resp struct {
		ID    string         `json:"id"`
		Steps int            `json:"steps"`
		Score float64        `json:"score"`
		Path  []domain.Coord `json:"path"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "run-1", resp.ID)
	assert.Equal(t, 4, resp.Steps)
	assert.InDelta(t, 4.0, resp.Score, 1e-9)
	assert.Len(t, resp.Path, 3)
}

func TestSolve_EndpointFallback(t *testing.T) {
	var out, errOut bytes.Buffer
	opts := solveOpts(t, &out, &errOut)
	opts.Start = "9, 9"
	opts.Goal = "goal"

	run, err := Solve(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, domain.Coord{}, run.Start)
	assert.Equal(t, domain.Coord{X: 1, Y: 1}, run.Goal)
	assert.Contains(t, errOut.String(), "Warning: start (9, 9) is outside the maze")
	assert.Contains(t, errOut.String(), "Warning: goal")
}

func TestSolve_FramesAndDisplay(t *testing.T) {
	var out, errOut bytes.Buffer
	opts := solveOpts(t, &out, &errOut)
	opts.SaveFrames = true
	opts.Display = true

	run, err := Solve(context.Background(), opts)
	require.NoError(t, err)

	framesDir := filepath.Join(opts.Overrides.OutDir, "run-1", "frames")
	entries, err := os.ReadDir(framesDir)
	require.NoError(t, err)
	assert.Len(t, entries, run.Steps()+2)
	assert.FileExists(t, filepath.Join(framesDir, "frame-final.txt"))

	assert.Contains(t, out.String(), "+---+---+")
}

func TestSolve_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing File", func(t *testing.T) {
		_, err := Solve(ctx, SolveOptions{MazePath: filepath.Join(t.TempDir(), "none.mz"), Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Unknown Store", func(t *testing.T) {
		_, err := Solve(ctx, SolveOptions{MazePath: writeMaze(t, deadEnd), Overrides: Overrides{Store: "s3"}, Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "invalid store")
	})

	t.Run("Not Converged", func(t *testing.T) {
		_, err := Solve(ctx, SolveOptions{MazePath: writeMaze(t, deadEnd), Overrides: Overrides{MaxSteps: 2}, Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
		assert.ErrorIs(t, err, domain.ErrNotConverged)
	})
}

func TestSolve_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("MAZERUNNER_REDIS_ADDR", mr.Addr())

	var out, errOut bytes.Buffer
	opts := solveOpts(t, &out, &errOut)
	opts.Overrides.Store = config.StoreRedis

	_, err := Solve(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, mr.Exists("mazerunner:run:run-1"))

	var shown bytes.Buffer
	err = Show(context.Background(), ShowOptions{
		RunID:     "run-1",
		Overrides: Overrides{Store: config.StoreRedis},
		JSON:      true,
		Out:       &shown,
	})
	require.NoError(t, err)
	assert.Contains(t, shown.String(), `"actions": "FLLFLFLF"`)
}

func TestShow(t *testing.T) {
	var out, errOut bytes.Buffer
	opts := solveOpts(t, &out, &errOut)
	_, err := Solve(context.Background(), opts)
	require.NoError(t, err)

	var shown bytes.Buffer
	err = Show(context.Background(), ShowOptions{RunID: "run-1", Overrides: opts.Overrides, Out: &shown})
	require.NoError(t, err)
	assert.Contains(t, shown.String(), "`run-1`")

	err = Show(context.Background(), ShowOptions{RunID: "missing", Overrides: opts.Overrides, Out: &shown})
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Validate(writeMaze(t, deadEnd), &out))
	assert.Contains(t, out.String(), "2 x 2 maze is valid")

	err := Validate(writeMaze(t, "####\n#..#\n####\n"), &out)
	assert.Error(t, err)
}

func TestNewServeHandler(t *testing.T) {
	cfg := config.Default()
	store, closeStore, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	h, err := NewServeHandler(cfg, store, NewLogger(cfg, false))
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]any{"name": "dead-end", "maze": deadEnd})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mazerunner_runs_started_total 1")
	assert.Contains(t, rec.Body.String(), `mazerunner_runs_finished_total{outcome="solved"} 1`)
}

func TestNewMCPServer(t *testing.T) {
	cfg := config.Default()
	srv := NewMCPServer(cfg, nil, NewLogger(cfg, false))
	assert.NotNil(t, srv.MCPServer())
}
