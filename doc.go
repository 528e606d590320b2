/*
Package mazerunner explores rectangular mazes with a left-hand wall follower and
reduces the visited trace into a loop-free path from start to goal.

# Concept

A Runner stands on a cell with a heading. At every step it senses the walls on
its left, front and right and takes the first open option in the fixed priority
LF > F > RF > LLF (turn left and advance, advance, turn right and advance, turn
around and advance). Every visited cell is appended to the maze trace. When the
runner reaches the goal the trace is simplified: each revisit truncates the path
back to the first visit, which removes every loop.

The score of a run is steps/4 + path length, so exploration is cheap compared to
the length of the path it finds.

# Usage

	m, err := maze.New(2, 2)
	if err != nil {
		log.Fatal(err)
	}
	m.AddVerticalWall(1, 1)

	solver := mazerunner.New(mazerunner.WithStore(memory.NewStore()))
	run, err := solver.Solve(context.Background(), m, nil, nil)
	if err != nil && !domain.IsCollaboratorOnly(err) {
		log.Fatal(err)
	}
	fmt.Println(run.Actions(), domain.FormatPath(run.Path))

Renderer and store failures never abort a run: Solve returns the complete run
together with the joined *domain.CollaboratorError values.
*/
package mazerunner
