package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// errorStyles colours diagnostics. Writers that are not terminals get
// plain text.
type errorStyles struct {
	header lipgloss.Style
	caret  lipgloss.Style
	gutter lipgloss.Style
}

func newErrorStyles(w io.Writer) errorStyles {
	r := lipgloss.NewRenderer(w)
	return errorStyles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		caret:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		gutter: r.NewStyle().Faint(true),
	}
}

// snippet styles the output of format.Snippet line by line.
func (s errorStyles) snippet(text string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = s.header.Render(line)
		case strings.HasPrefix(line, "     |"):
			lines[i] = s.gutter.Render("     |") + s.caret.Render(line[len("     |"):])
		case strings.Contains(line, " | "):
			gutter, src, _ := strings.Cut(line, " | ")
			lines[i] = s.gutter.Render(gutter+" |") + " " + src
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func (s errorStyles) plain(err error) string {
	return s.header.Render("error:") + " " + err.Error() + "\n"
}
