package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalConfirmer_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		assumeYes  bool
		isTerminal bool
		input      string
		want       bool
	}{
		{name: "assume yes skips input", assumeYes: true, isTerminal: false, want: true},
		{name: "not a terminal declines", isTerminal: false, input: "y\n", want: false},
		{name: "y approves", isTerminal: true, input: "y\n", want: true},
		{name: "YES approves", isTerminal: true, input: "  YES \n", want: true},
		{name: "n declines", isTerminal: true, input: "n\n", want: false},
		{name: "empty answer declines", isTerminal: true, input: "\n", want: false},
		{name: "eof declines", isTerminal: true, input: "", want: false},
		{name: "answer without newline", isTerminal: true, input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &TerminalConfirmer{
				AssumeYes:  tt.assumeYes,
				in:         strings.NewReader(tt.input),
				out:        &out,
				isTerminal: func() bool { return tt.isTerminal },
			}

			if got := c.Confirm("Delete everything?"); got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Delete everything?") {
				t.Errorf("prompt output = %q", out.String())
			}
		})
	}
}
