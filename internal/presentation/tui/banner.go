package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Green to teal, hedge-maze colors.
	lines := []struct {
		text  string
		color string
	}{
		{" _ __ ___   __ _ _______ _ __ _   _ _ __  _ __   ___ _ __ ", "#4ade80"},
		{"| '_ ` _ \\ / _` |_  / _ \\ '__| | | | '_ \\| '_ \\ / _ \\ '__|", "#34d399"},
		{"| | | | | | (_| |/ /  __/ |  | |_| | | | | | | |  __/ |   ", "#2dd4bf"},
		{"|_| |_| |_|\\__,_/___\\___|_|   \\__,_|_| |_|_| |_|\\___|_|   ", "#22d3ee"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
