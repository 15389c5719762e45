package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

const disclaimer = "DISCLAIMER: this tool does NOT modify CCP software. It edits local Steam config only. " +
	"All rights belong to CCP hf. Use at your own risk; do not contact CCP for support."

const (
	defaultName     = "EVE Vanguard"
	defaultProton   = "proton_experimental"
	defaultPriority = 250
	defaultCompatID = "8500"
	defaultTimeout  = 120
	defaultTag      = "Vanguard"
)

type rootConfig struct {
	Debug bool `cli:"name=debug desc='verbose console output'"`

	Root     *cli.Command
	LogPath  string
	CloseLog func() error
}

func MainCommand() *cli.Command {
	cfg := &rootConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	install := InstallCommand(cfg)
	return cli.NewCommandAt(&cfg.Root, "vgi").
		WithSynopsis("vgi [opts] [command [opts]]").
		WithDescription(description).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vgiMain(cfg, install, cc, args)
		}).
		WithSubs(
			install,
			StatusCommand(cfg),
			CaptureCommand(cfg),
			AppIDCommand(cfg))
}

func vgiMain(cfg *rootConfig, install *cli.Command, cc *cli.Context, args []string) error {
	args, err := cfg.Root.Parse(cc, args)
	if err != nil {
		return err
	}
	setupLogging(cfg)
	defer func() {
		if cfg.CloseLog != nil {
			cfg.CloseLog()
		}
	}()
	if len(args) == 0 {
		// bare vgi runs an install, like the tool it replaces
		return install.Run(cc, args)
	}
	sub := cfg.Root.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

const description = `vgi installs EVE Vanguard as a Steam Non-Steam shortcut on Linux.

An install run discovers the Steam installation and the game's Proton
prefix, inserts or updates the shortcut in the profile's
shortcuts.vdf, waits for the game to start once via the EVE launcher
to capture its runtime arguments into LaunchOptions, and maps the
shortcut's AppID to a Proton tool in config.vdf. Runs are idempotent:
rerunning updates the same shortcut in place.

Every file the tool rewrites is first copied aside to a timestamped
.bak sibling, and writes go through a temp file and rename, so an
interrupted run never leaves a torn file behind.

Resolved paths are remembered under ~/.config/vgi and reused on the
next run. Per-run logs live in ~/.config/vgi/logs.`
