package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/mazerunner/internal/mazefile"
)

// Validate parses the maze file and prints its dimensions.
func Validate(path string, out io.Writer) error {
	m, err := mazefile.ParseFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d x %d maze is valid\n", m.Name(), m.Width(), m.Height())
	return nil
}
