package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// terminal writes styled shell output.
type terminal struct {
	out    io.Writer
	prompt lipgloss.Style
	info   lipgloss.Style
	err    lipgloss.Style
}

// newTerminal picks colours for out. Writers that are not terminals get plain
// text.
func newTerminal(out io.Writer) *terminal {
	r := lipgloss.NewRenderer(out)
	return &terminal{
		out:    out,
		prompt: r.NewStyle().Foreground(lipgloss.Color("#999999")),
		info:   r.NewStyle().Foreground(lipgloss.Color("#FFFF66")),
		err:    r.NewStyle().Foreground(lipgloss.Color("#FF6666")).Bold(true),
	}
}

func (t *terminal) showPrompt(prompt string) {
	fmt.Fprint(t.out, t.prompt.Render(prompt))
}

// giveInfo prints "KIND: text".
func (t *terminal) giveInfo(kind, text string) {
	fmt.Fprintln(t.out, t.info.Render(kind+":"), text)
}

func (t *terminal) giveError(text string) {
	fmt.Fprintln(t.out, t.err.Render("ERROR:"), text)
}

func (t *terminal) println(text string) {
	fmt.Fprintln(t.out, text)
}
