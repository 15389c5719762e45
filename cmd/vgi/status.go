package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/eve-tools/vgi/appid"
	"github.com/eve-tools/vgi/shortcuts"
	"github.com/eve-tools/vgi/state"
	"github.com/eve-tools/vgi/textvdf"
	"github.com/eve-tools/vgi/vdf"
)

type statusConfig struct {
	*cli.Command
	root *rootConfig

	Name string `cli:"name=name desc='shortcut name to look up'"`
}

func StatusCommand(root *rootConfig) *cli.Command {
	cfg := &statusConfig{root: root}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "status").
		WithAliases("st").
		WithSynopsis("status [-name name]").
		WithDescription("show the saved state, the installed shortcut and its Proton mapping").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *statusConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", cli.ErrUsage, args)
	}
	st := newStyles(cc.Out)

	saved, err := state.Load()
	if err != nil {
		slog.Warn("saved state unreadable", "err", err)
		saved = &state.State{}
	}
	if p, err := state.Path(); err == nil {
		fmt.Fprintln(cc.Out, st.Head("state"))
		fmt.Fprintf(cc.Out, "  config      %s\n", p)
	}
	if cfg.root.LogPath != "" {
		fmt.Fprintf(cc.Out, "  log         %s\n", cfg.root.LogPath)
	}
	if saved.SteamRoot != "" {
		fmt.Fprintf(cc.Out, "  steam root  %s\n", saved.SteamRoot)
	}
	if saved.ProfileID != "" {
		fmt.Fprintf(cc.Out, "  profile     %s\n", saved.ProfileID)
	}

	name := cfg.Name
	if name == "" {
		name = saved.Name
	}
	if name == "" {
		name = defaultName
	}
	if saved.ShortcutsVDF == "" {
		fmt.Fprintln(cc.Out, "No install recorded; run vgi install.")
		return nil
	}

	doc, err := shortcuts.Load(saved.ShortcutsVDF)
	if err != nil {
		return fmt.Errorf("reading %s: %w", saved.ShortcutsVDF, err)
	}
	key, e, ok := shortcuts.FindByName(doc, name)
	if !ok {
		fmt.Fprintf(cc.Out, "No shortcut named %q in %s.\n", name, saved.ShortcutsVDF)
		return nil
	}
	exe := stringField(e, "exe")
	id := appid.ForShortcut(exe, name)
	fmt.Fprintln(cc.Out, st.Head("shortcut"))
	fmt.Fprintf(cc.Out, "  index          %s\n", key)
	fmt.Fprintf(cc.Out, "  appname        %s\n", name)
	fmt.Fprintf(cc.Out, "  exe            %s\n", exe)
	fmt.Fprintf(cc.Out, "  LaunchOptions  %s\n", stringField(e, "LaunchOptions"))
	fmt.Fprintf(cc.Out, "  AppID          %d\n", id)
	if saved.AppID != 0 && saved.AppID != id {
		fmt.Fprintf(cc.Out, "  saved AppID    %d (exe or name changed since install)\n", saved.AppID)
	}
	fmt.Fprintf(cc.Out, "  rungameid      %s\n", appid.URL(id))

	if saved.ConfigVDF == "" {
		return nil
	}
	f, err := textvdf.Load(saved.ConfigVDF)
	if err != nil {
		slog.Warn("config.vdf unreadable", "path", saved.ConfigVDF, "err", err)
		return nil
	}
	pairs, ok, err := f.BlockEntry(compatPath, strconv.FormatUint(uint64(id), 10))
	if err != nil || !ok {
		fmt.Fprintf(cc.Out, "  Proton         (none)\n")
		return nil
	}
	fmt.Fprintf(cc.Out, "  Proton         %s (priority %s)\n", pairs["name"], pairs["Priority"])
	return nil
}

func stringField(e *vdf.Node, key string) string {
	if v := e.Get(key); v != nil && v.Type == vdf.StringType {
		return v.Str
	}
	return ""
}
