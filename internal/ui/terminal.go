package ui

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/cgtop/internal/errors"
)

// Terminal owns the interactive terminal: raw mode on stdin, the alternate
// screen buffer on stdout, and frame drawing. Restore must run before the
// process exits or the user's shell is left in raw mode.
type Terminal struct {
	out  *termenv.Output
	in   *os.File
	prev *term.State
}

// NewTerminal wraps the process's stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		out: termenv.NewOutput(os.Stdout),
		in:  os.Stdin,
	}
}

// Enter switches stdin to raw mode and stdout to the alternate screen with
// the cursor hidden.
func (t *Terminal) Enter() error {
	prev, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"cannot put terminal into raw mode",
			"Run cgtop from an interactive terminal")
	}
	t.prev = prev
	t.out.AltScreen()
	t.out.HideCursor()
	return nil
}

// Restore undoes Enter. Safe to call when Enter never ran or failed.
func (t *Terminal) Restore() {
	t.out.ShowCursor()
	t.out.ExitAltScreen()
	if t.prev != nil {
		_ = term.Restore(int(t.in.Fd()), t.prev)
		t.prev = nil
	}
}

// Size returns the terminal dimensions, with a sane default when the size
// cannot be determined.
func (t *Terminal) Size() (width, height int) {
	width, height, err := term.GetSize(int(t.in.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}

// Draw writes one frame from the top-left corner, clearing the remainder
// of each line. Raw mode means newlines need explicit carriage returns.
func (t *Terminal) Draw(frame string) {
	t.out.MoveCursor(1, 1)
	for _, line := range strings.Split(frame, "\n") {
		t.out.WriteString(line)
		t.out.ClearLineRight()
		t.out.WriteString("\r\n")
	}
}

// Input returns the file the input worker should read key presses from.
func (t *Terminal) Input() *os.File {
	return t.in
}
