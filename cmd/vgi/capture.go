package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/eve-tools/vgi/capture"
)

type captureConfig struct {
	*cli.Command
	root *rootConfig

	Timeout int    `cli:"name=timeout desc='seconds to wait for the process'"`
	Marker  string `cli:"name=marker desc='command-line substring selecting the process'"`
	Match   string `cli:"name=match desc='expression over pid, name, exe, cmdline selecting the process'"`
}

func CaptureCommand(root *rootConfig) *cli.Command {
	cfg := &captureConfig{root: root, Timeout: defaultTimeout}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "capture").
		WithAliases("cap").
		WithSynopsis("capture [-timeout s] [-marker substr | -match expr]").
		WithDescription("watch the process table and print the captured launch arguments").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *captureConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", cli.ErrUsage, args)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	slog.Info("waiting for the game process", "timeout", cfg.Timeout)
	tail, err := capture.Args(cctx, capture.Config{Marker: cfg.Marker, Match: cfg.Match})
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, tail)
	return nil
}
