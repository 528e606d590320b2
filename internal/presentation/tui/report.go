package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/mazerunner/pkg/domain"
)

// Report builds the markdown summary of a finished run.
func Report(run *domain.Run) string {
	var b strings.Builder

	title := run.MazeName
	if title == "" {
		title = "maze"
	}
	fmt.Fprintf(&b, "# Run of %s\n\n", title)

	b.WriteString("| | |\n|---|---|\n")
	row := func(k, v string) { fmt.Fprintf(&b, "| %s | %s |\n", k, v) }
	if run.ID != "" {
		row("Run ID", "`"+run.ID+"`")
	}
	row("Size", fmt.Sprintf("%d x %d", run.Width, run.Height))
	row("Start", run.Start.String())
	row("Goal", run.Goal.String())
	row("Exploration steps", fmt.Sprint(run.Steps()))
	row("Path length", fmt.Sprint(len(run.Path)))
	row("Score", domain.FormatScore(run.Score()))

	b.WriteString("\n## Path\n\n")
	b.WriteString(domain.FormatPath(run.Path))
	b.WriteString("\n")

	if actions := run.Actions(); actions != "" {
		b.WriteString("\n## Actions\n\n`")
		b.WriteString(actions)
		b.WriteString("`\n")
	}
	return b.String()
}

// RenderReport renders the report through glamour, falling back to raw markdown.
func RenderReport(run *domain.Run, render func(string) (string, error)) string {
	md := Report(run)
	if render == nil {
		return md
	}
	out, err := render(md)
	if err != nil {
		return md
	}
	return out
}
