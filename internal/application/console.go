package application

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrInputClosed means the user's input ended before a line was read.
var ErrInputClosed = errors.New("input closed")

type styles struct {
	title  lipgloss.Style
	notice lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

// newStyles binds styles to w, so a pipe or file gets plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true),
		notice: r.NewStyle().Faint(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		err:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// console is the line-oriented terminal both menus talk through.
type console struct {
	in  *bufio.Reader
	out io.Writer
	st  styles
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewReader(in), out: out, st: newStyles(out)}
}

// readLine returns the next line without its line ending or surrounding
// spaces. A final line without a newline is still returned.
func (c *console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

func (c *console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	return c.readLine()
}

func (c *console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *console) notice(s string) {
	fmt.Fprintln(c.out, c.st.notice.Render(s))
}

func (c *console) warn(s string) {
	fmt.Fprintln(c.out, c.st.warn.Render(s))
}

func (c *console) fail(s string) {
	fmt.Fprintln(c.out, c.st.err.Render(s))
}
