package runtime

import "github.com/aretw0/mazerunner/pkg/domain"

// Simplify removes revisit loops from an exploration trace.
//
// Each cell keeps the output index of its first occurrence. Meeting a cell
// again truncates the output back to that index, dropping the loop; the index
// of the revisited cell is not updated. Cells dropped by a truncation lose
// their index, so a later visit appends them afresh.
func Simplify(trace []domain.Coord) []domain.Coord {
	path := make([]domain.Coord, 0, len(trace))
	first := make(map[domain.Coord]int, len(trace))

	for _, c := range trace {
		k, seen := first[c]
		if !seen {
			first[c] = len(path)
			path = append(path, c)
			continue
		}
		for _, dropped := range path[k+1:] {
			delete(first, dropped)
		}
		path = path[:k+1]
	}

	return path
}
