/*
Package ports defines the driven ports (interfaces) of the mazerunner solver.

These interfaces decouple the exploration core from external implementations,
allowing finished runs to be kept in memory, on disk or in Redis.

# Key Interfaces

  - RunStore: persists and retrieves finished runs by ID.
*/
package ports
