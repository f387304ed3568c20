package notify

import (
	"fmt"
	"io"
)

// Navigator performs a full transition to another location.
type Navigator interface {
	Goto(url string)
}

// TerminalNavigator records the location and prints it; the current command
// is expected to finish after Goto.
type TerminalNavigator struct {
	Out      io.Writer
	Location string
}

var _ Navigator = (*TerminalNavigator)(nil)

func (n *TerminalNavigator) Goto(url string) {
	n.Location = url
	fmt.Fprintf(n.Out, "→ %s\n", url)
}
