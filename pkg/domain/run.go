package domain

import (
	"strconv"
	"strings"
	"time"
)

// Run is the record of one finished exploration.
type Run struct {
	ID        string    `json:"id"`
	MazeName  string    `json:"maze_name,omitempty"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Start     Coord     `json:"start"`
	Goal      Coord     `json:"goal"`
	Trace     []Coord   `json:"trace"`
	Moves     []Move    `json:"moves"`
	Path      []Coord   `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Steps is the number of exploration moves.
func (r *Run) Steps() int {
	return len(r.Moves)
}

// Actions concatenates every action code of the exploration.
func (r *Run) Actions() string {
	return JoinActions(r.Moves)
}

// Score weighs exploration cost against the final path: steps/4 + path length.
func (r *Run) Score() float64 {
	return float64(r.Steps())/4 + float64(len(r.Path))
}

// Clone returns a deep copy so stores can hand out runs without sharing slices.
func (r *Run) Clone() *Run {
	cp := *r
	cp.Trace = append([]Coord(nil), r.Trace...)
	cp.Moves = append([]Move(nil), r.Moves...)
	cp.Path = append([]Coord(nil), r.Path...)
	return &cp
}

// FormatScore prints a score with at least one decimal place ("4.0", "5.25").
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
