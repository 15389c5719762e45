// Package main is the entry point for vgi, a Linux tool that wires
// EVE Vanguard into Steam: it installs a Non-Steam shortcut pointing
// at the game's EAC launcher inside a Proton prefix, captures the
// runtime arguments the official launcher passes, and maps the
// shortcut to a Proton compatibility tool.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
