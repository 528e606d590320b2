package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/mazerunner/pkg/domain"
)

const (
	// RunFile holds the full JSON record and is what Load reads.
	RunFile = "run.json"
	// ExplorationFile lists every move.
	ExplorationFile = "exploration.csv"
	// StatisticsFile is the human-readable summary.
	StatisticsFile = "statistics.txt"
)

// Store implements ports.RunStore using the local filesystem.
// Every run gets its own directory holding run.json, exploration.csv and statistics.txt.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".mazerunner/runs".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".mazerunner", "runs")
	}
	return &Store{BasePath: basePath}
}

// Dir returns the artifact directory of a run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.BasePath, runID)
}

// Save writes the run artifacts. Each file is replaced atomically.
func (s *Store) Save(ctx context.Context, run *domain.Run) error {
	if err := validID(run.ID); err != nil {
		return err
	}

	dir := s.Dir(run.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure run directory: %w", err)
	}

	var csvBuf, statsBuf bytes.Buffer
	if err := WriteExploration(&csvBuf, run.Moves); err != nil {
		return fmt.Errorf("failed to encode exploration: %w", err)
	}
	if err := WriteStatistics(&statsBuf, run); err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	// run.json last: a directory without it is not listed.
	for _, f := range []struct {
		name string
		data []byte
	}{
		{ExplorationFile, csvBuf.Bytes()},
		{StatisticsFile, statsBuf.Bytes()},
		{RunFile, data},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeAtomic(dir, f.name, f.data); err != nil {
			return err
		}
	}
	return nil
}

// Load reads run.json.
func (s *Store) Load(ctx context.Context, runID string) (*domain.Run, error) {
	if err := validID(runID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(runID), RunFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", runID, err)
	}
	return &run, nil
}

// Delete removes the run directory.
func (s *Store) Delete(ctx context.Context, runID string) error {
	if err := validID(runID); err != nil {
		return err
	}
	if err := os.RemoveAll(s.Dir(runID)); err != nil {
		return fmt.Errorf("failed to delete run directory: %w", err)
	}
	return nil
}

// List returns the IDs of directories that contain a run.json.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.BasePath, entry.Name(), RunFile)); err == nil {
			runs = append(runs, entry.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}

func validID(runID string) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}
	if strings.ContainsAny(runID, `/\`) || runID == "." || runID == ".." {
		return fmt.Errorf("invalid runID %q", runID)
	}
	return nil
}

// writeAtomic writes to a temp file in dir, fsyncs it and renames it over name.
func writeAtomic(dir, name string, data []byte) error {
	destPath := filepath.Join(dir, name)

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync %s: %w", name, err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to replace %s: %w", name, err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", name, err)
	}
	return nil
}
