package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalConfirmer asks yes/no questions on a terminal.
// With AssumeYes set every prompt is approved without reading input.
// When input is not a terminal, prompts are declined.
type TerminalConfirmer struct {
	AssumeYes bool

	in         io.Reader
	out        io.Writer
	isTerminal func() bool
}

// NewTerminalConfirmer creates a confirmer reading from stdin and
// prompting on stderr.
func NewTerminalConfirmer(assumeYes bool) *TerminalConfirmer {
	return &TerminalConfirmer{
		AssumeYes:  assumeYes,
		in:         os.Stdin,
		out:        os.Stderr,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// Confirm prints prompt and reads a y/yes answer.
func (c *TerminalConfirmer) Confirm(prompt string) bool {
	if c.AssumeYes {
		fmt.Fprintf(c.out, "%s [y/N] y\n", prompt)
		return true
	}
	if !c.isTerminal() {
		fmt.Fprintf(c.out, "%s (not a terminal, use --yes to confirm)\n", prompt)
		return false
	}

	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// ReadPassphrase prompts on stderr and reads a passphrase from the terminal
// without echo.
func ReadPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("reading passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}
