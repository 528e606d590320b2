package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/mazerunner/pkg/domain"
)

// ExplorationHeader is the first row of exploration.csv.
var ExplorationHeader = []string{"Step", "x-coordinate", "y-coordinate", "Actions"}

// WriteExploration writes one CSV row per move: step, pre-move x, pre-move y, action code.
func WriteExploration(w io.Writer, moves []domain.Move) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExplorationHeader); err != nil {
		return err
	}
	for _, mv := range moves {
		row := []string{
			strconv.Itoa(mv.Step),
			strconv.Itoa(mv.From.X),
			strconv.Itoa(mv.From.Y),
			string(mv.Action),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatistics writes the run summary, one value per line:
// maze name, score, exploration steps, final path, path length.
func WriteStatistics(w io.Writer, run *domain.Run) error {
	lines := []string{
		run.MazeName,
		domain.FormatScore(run.Score()),
		strconv.Itoa(run.Steps()),
		domain.FormatPath(run.Path),
		strconv.Itoa(len(run.Path)),
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// ReadStatistics parses a statistics.txt back into its fields.
func ReadStatistics(r io.Reader) (Statistics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Statistics{}, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 5 {
		return Statistics{}, fmt.Errorf("statistics: expected 5 lines, got %d", len(lines))
	}

	score, err := strconv.ParseFloat(lines[1], 64)
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: score: %w", err)
	}
	steps, err := strconv.Atoi(lines[2])
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: steps: %w", err)
	}
	length, err := strconv.Atoi(lines[4])
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: path length: %w", err)
	}

	return Statistics{
		MazeName:   lines[0],
		Score:      score,
		Steps:      steps,
		Path:       lines[3],
		PathLength: length,
	}, nil
}

// Statistics mirrors the lines of statistics.txt.
type Statistics struct {
	MazeName   string
	Score      float64
	Steps      int
	Path       string
	PathLength int
}
