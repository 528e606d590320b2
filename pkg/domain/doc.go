/*
Package domain contains the core domain models of the maze runner.

It defines the entities shared by the maze, the exploration engine and every
adapter: grid coordinates, compass orientations, the Runner itself, the move
records produced during exploration and the Run that captures a finished
exploration. The package is kept pure and free of I/O or persistence.

# Key Entities

  - Coord: a cell on the grid, (0,0) being the bottom-left cell.
  - Orientation: one of N, E, S, W in that cyclic order.
  - Runner: the agent, a position plus a heading, mutated only through Turn and Advance.
  - Move: one exploration step (step index, pre-move cell, action code).
  - Run: the full record of an exploration (trace, moves, simplified path).
*/
package domain
