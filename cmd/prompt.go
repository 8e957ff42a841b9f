package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter reads form input line by line. Required fields re-prompt on empty
// input, which is the terminal's version of the HTML required attribute.
// Once the input stream ends, every read returns empty and done reports true
// so the menu loops can exit instead of re-prompting.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// done reports whether the input stream is exhausted.
func (p *prompter) done() bool { return p.eof }

func (p *prompter) line(label string) string {
	if p.eof {
		return ""
	}
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// required re-prompts until a non-empty value arrives; empty only when the
// input stream ends first.
func (p *prompter) required(label string) string {
	for {
		v := p.line(label)
		if v != "" || p.eof {
			return v
		}
		fmt.Fprintln(p.out, "This field is required.")
	}
}

// confirm asks a y/N question; anything but an explicit yes is a no.
func (p *prompter) confirm(label string) bool {
	answer := strings.ToLower(p.line(label + " [y/N]"))
	return answer == "y" || answer == "yes"
}

func (p *prompter) number(label string) (int, bool) {
	v := p.line(label)
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintln(p.out, "Enter a number.")
		return 0, false
	}
	return n, true
}

// fail prints an operation's error inline, next to where the action ran.
func (p *prompter) fail(err error) {
	fmt.Fprintf(p.out, "Error: %s\n", err)
}
