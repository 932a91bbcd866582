// Package prompt implements the interactive multi-select used to choose
// filter values.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/rollcall"
)

// Messages printed on bad input.
const (
	MsgNoValid = "No valid selections parsed. Try again."
	MsgInvalid = "Invalid input. Try again (e.g., 1,2 or 'all' or Enter to skip)."
)

var allTokens = map[string]bool{"all": true, "a": true, "*": true}

// Prompter shows a numbered menu on Out and reads answers from In.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ rollcall.Prompter = (*Prompter)(nil)

// New creates a Prompter. Successive prompts share one buffered reader so
// piped answers are consumed line by line.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Select lists options and reads a comma separated list of 1-based indexes.
// "all", "a" or "*" select every option; an empty line or end of input
// selects nothing. Out of range indexes are ignored and repeated picks
// collapse to the first. Unusable answers are reported and asked again.
func (p *Prompter) Select(ctx context.Context, title string, options []string) ([]string, error) {
	fmt.Fprintf(p.out, "\n%s\n", title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprintln(p.out, "Enter numbers separated by comma (e.g., 1,3), 'all' for all, or press Enter to skip.")

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprint(p.out, "> ")

		line, err := p.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading selection: %w", err)
		}
		eof := err == io.EOF

		picked, perr := Parse(line, options)
		switch {
		case perr == nil:
			return picked, nil
		case eof:
			fmt.Fprintln(p.out)
			return nil, nil
		default:
			fmt.Fprintln(p.out, perr.Error())
		}
	}
}

// parseError carries the message shown before asking again.
type parseError string

func (e parseError) Error() string { return string(e) }

// Parse interprets one answer against options.
func Parse(answer string, options []string) ([]string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil
	}
	if allTokens[strings.ToLower(answer)] {
		return append([]string(nil), options...), nil
	}

	var picked []string
	seen := make(map[int]bool)
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, parseError(MsgInvalid)
		}
		if n < 1 || n > len(options) || seen[n] {
			continue
		}
		seen[n] = true
		picked = append(picked, options[n-1])
	}
	if len(picked) == 0 {
		return nil, parseError(MsgNoValid)
	}
	return picked, nil
}
