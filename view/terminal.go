package view

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/logrusorgru/aurora"

	"github.com/sheikhrachel/go-life/model"
)

const clearCmd = "clear"

// TerminalRenderer streams frames of a universe to a writer
type TerminalRenderer struct {
	out   io.Writer
	color aurora.Aurora

	liveFiller string
	deadFiller string
}

// NewTerminalRenderer creates a renderer writing to out, colored when color is set
func NewTerminalRenderer(out io.Writer, color bool) *TerminalRenderer {
	au := aurora.NewAurora(color)
	return &TerminalRenderer{
		out:        out,
		color:      au,
		liveFiller: au.Green(string(model.GlyphAlive)).String(),
		deadFiller: au.Faint(string(model.GlyphDead)).String(),
	}
}

// Display writes one frame of the universe
func (r *TerminalRenderer) Display(u *model.Universe) error {
	w := bufio.NewWriter(r.out)
	cells := u.Cells()
	for row := range u.Height() {
		for _, c := range cells[row*u.Width() : (row+1)*u.Width()] {
			if c.IsAlive() {
				w.WriteString(r.liveFiller)
			} else {
				w.WriteString(r.deadFiller)
			}
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Status writes a labelled status line, the label highlighted
func (r *TerminalRenderer) Status(label, format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s "+format+"\n", append([]interface{}{r.color.Bold(r.color.Cyan(label))}, args...)...)
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	if r.out != os.Stdout {
		return
	}
	cmd := exec.Command(clearCmd)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out, "Error clearing terminal:", err)
	}
}
