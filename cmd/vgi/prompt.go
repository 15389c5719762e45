package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

// prompt asks one question on cc.Out and reads one line from cc.In.
// It refuses under -no-prompt or when stdin is not a terminal, so
// scripted runs fail fast instead of hanging.
func (cfg *installConfig) prompt(cc *cli.Context, msg string) (string, error) {
	if cfg.NoPrompt {
		return "", errors.New("prompting disabled by -no-prompt")
	}
	if f, ok := cc.In.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return "", errors.New("stdin is not a terminal")
	}
	fmt.Fprint(cc.Out, msg)
	sc := bufio.NewScanner(cc.In)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no answer")
	}
	ans := strings.TrimSpace(sc.Text())
	if ans == "" {
		return "", errors.New("empty answer")
	}
	return ans, nil
}
