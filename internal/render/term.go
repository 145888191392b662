package render

import "github.com/cli/go-gh/v2/pkg/term"

// ProbeTerminal reports the terminal width and whether color output is
// enabled. It is queried once at startup; a non-terminal stdout falls back
// to 80 columns with color disabled.
func ProbeTerminal() (int, bool) {
	t := term.FromEnv()
	if !t.IsTerminalOutput() {
		return 80, false
	}
	w, _, err := t.Size()
	if err != nil || w <= 0 {
		return 80, t.IsColorEnabled()
	}
	return w, t.IsColorEnabled()
}
