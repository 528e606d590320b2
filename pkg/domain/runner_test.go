package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunner_TurnRoundTrip(t *testing.T) {
	for _, o := range Orientations {
		r := NewRunner(Coord{}, o)
		r.Turn(TurnLeft)
		r.Turn(TurnRight)
		assert.Equal(t, o, r.Orientation(), "left then right from %s", o)

		r.Turn(TurnRight)
		r.Turn(TurnLeft)
		assert.Equal(t, o, r.Orientation(), "right then left from %s", o)
	}
}

func TestRunner_TurnCycle(t *testing.T) {
	r := NewRunner(Coord{X: 2, Y: 2}, North)

	var rightward []Orientation
	for i := 0; i < 4; i++ {
		r.Turn(TurnRight)
		rightward = append(rightward, r.Orientation())
	}
	assert.Equal(t, []Orientation{East, South, West, North}, rightward)

	var leftward []Orientation
	for i := 0; i < 4; i++ {
		r.Turn(TurnLeft)
		leftward = append(leftward, r.Orientation())
	}
	assert.Equal(t, []Orientation{West, South, East, North}, leftward)
	assert.Equal(t, Coord{X: 2, Y: 2}, r.Position(), "turning must not move the runner")
}

func TestRunner_Advance(t *testing.T) {
	tests := []struct {
		heading Orientation
		want    Coord
	}{
		{North, Coord{X: 3, Y: 4}},
		{East, Coord{X: 4, Y: 3}},
		{South, Coord{X: 3, Y: 2}},
		{West, Coord{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.heading.String(), func(t *testing.T) {
			r := NewRunner(Coord{X: 3, Y: 3}, tt.heading)
			r.Advance()
			assert.Equal(t, tt.want, r.Position())
			assert.Equal(t, tt.heading, r.Orientation())
		})
	}
}

func TestRunner_StateIsACopy(t *testing.T) {
	r := NewRunner(Coord{}, East)
	s := r.State()
	r.Advance()
	r.Turn(TurnLeft)

	assert.Equal(t, RunnerState{Position: Coord{}, Orientation: East}, s)
	assert.Equal(t, RunnerState{Position: Coord{X: 1}, Orientation: North}, r.State())
}

func TestOrientation_ParseAndJSON(t *testing.T) {
	for _, o := range Orientations {
		parsed, err := ParseOrientation(o.String())
		assert.NoError(t, err)
		assert.Equal(t, o, parsed)
	}
	_, err := ParseOrientation("X")
	assert.Error(t, err)

	data, err := North.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"N"`, string(data))

	var o Orientation
	assert.NoError(t, o.UnmarshalJSON([]byte(`"W"`)))
	assert.Equal(t, West, o)
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		want    Coord
		wantErr bool
	}{
		{"2, 1", Coord{X: 2, Y: 1}, false},
		{"2,1", Coord{X: 2, Y: 1}, false},
		{"(4, 5)", Coord{X: 4, Y: 5}, false},
		{" 0 , 0 ", Coord{}, false},
		{"2", Coord{}, true},
		{"a, 1", Coord{}, true},
		{"1, 2, 3", Coord{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCoord(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRun_Derived(t *testing.T) {
	run := &Run{
		Moves: []Move{
			{Step: 1, From: Coord{}, Action: ActionForward},
			{Step: 2, From: Coord{Y: 1}, Action: ActionRightForward},
			{Step: 3, From: Coord{X: 1, Y: 1}, Action: ActionTurnAround},
			{Step: 4, From: Coord{X: 2, Y: 1}, Action: ActionLeftForward},
		},
		Path: []Coord{{}, {Y: 1}, {X: 1, Y: 1}},
	}

	assert.Equal(t, 4, run.Steps())
	assert.Equal(t, "FRFLLFLF", run.Actions())
	assert.InDelta(t, 4.0, run.Score(), 1e-9)
	assert.Equal(t, "(0, 0), (0, 1), (1, 1)", FormatPath(run.Path))
}

func TestRun_CloneAndScoreFormat(t *testing.T) {
	run := &Run{ID: "r", Path: []Coord{{}, {X: 1}}, Moves: []Move{{Step: 1, Action: ActionForward}}}
	cp := run.Clone()
	cp.Path[0] = Coord{X: 9}
	assert.Equal(t, Coord{}, run.Path[0])

	assert.Equal(t, "2.25", FormatScore(run.Score()))
	assert.Equal(t, "4.0", FormatScore(4))
	assert.Equal(t, "0.0", FormatScore(0))
}
