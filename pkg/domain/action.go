package domain

import "strings"

// Action is the code recorded for one exploration step.
type Action string

// Action codes, in the priority order the wall follower tries them.
const (
	ActionLeftForward  Action = "LF"
	ActionForward      Action = "F"
	ActionRightForward Action = "RF"
	ActionTurnAround   Action = "LLF"
)

// Actions lists every code in priority order.
var Actions = []Action{ActionLeftForward, ActionForward, ActionRightForward, ActionTurnAround}

// Turns returns the quarter turns performed before advancing.
func (a Action) Turns() []Turn {
	switch a {
	case ActionLeftForward:
		return []Turn{TurnLeft}
	case ActionRightForward:
		return []Turn{TurnRight}
	case ActionTurnAround:
		return []Turn{TurnLeft, TurnLeft}
	}
	return nil
}

// Move is the record of one exploration step.
type Move struct {
	// Step is 1-based.
	Step   int    `json:"step"`
	From   Coord  `json:"from"`
	Action Action `json:"action"`
}

// JoinActions concatenates the action codes of moves, e.g. "FFLFRF".
func JoinActions(moves []Move) string {
	var sb strings.Builder
	for _, m := range moves {
		sb.WriteString(string(m.Action))
	}
	return sb.String()
}
