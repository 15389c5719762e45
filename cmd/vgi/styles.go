package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// styles holds the Sprintf-shaped color funcs for user-facing output.
// All identity when the writer is not a terminal.
type styles struct {
	Head func(string, ...any) string
	Good func(string, ...any) string
	Dim  func(string, ...any) string
	Add  func(string, ...any) string
	Del  func(string, ...any) string
}

func newStyles(w io.Writer) *styles {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return &styles{
			Head: fmt.Sprintf,
			Good: fmt.Sprintf,
			Dim:  fmt.Sprintf,
			Add:  fmt.Sprintf,
			Del:  fmt.Sprintf,
		}
	}
	return &styles{
		Head: color.New(color.Bold).SprintfFunc(),
		Good: color.New(color.FgGreen).SprintfFunc(),
		Dim:  color.New(color.FgHiBlack).SprintfFunc(),
		Add:  color.New(color.FgGreen).SprintfFunc(),
		Del:  color.New(color.FgRed).SprintfFunc(),
	}
}
