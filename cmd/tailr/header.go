package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// newHeaderWriter returns a function that prints the per-file header
// banner, preceded by a blank line when earlier output exists. Headers are
// bold when the sink is a terminal, always with --color=always, never with
// --color=never.
func newHeaderWriter(w io.Writer, mode string) func(separate bool, name string) {
	c := color.New(color.Bold)
	switch mode {
	case "always":
		c.EnableColor()
	case "never":
		c.DisableColor()
	default:
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			c.DisableColor()
		}
	}
	return func(separate bool, name string) {
		if separate {
			fmt.Fprintln(w)
		}
		c.Fprintf(w, "==> %s <==\n", name)
	}
}
