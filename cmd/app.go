// Package cmd implements the CLI application that runs the rebalancing
// engine on pasted spreadsheet text or broker JSON exports.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the rebal tool.
// A main package registers them and executes the user-selected one.
var Commands = []subcommands.Command{
	&planCmd{},
	&checkCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// keep rendering helpers as plain functions over stdout/stderr.

// printMarkdown renders a markdown report on the terminal, falling back to
// the raw markdown when the terminal renderer is unavailable.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// open returns the named file, or stdin for "-".
func open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}
