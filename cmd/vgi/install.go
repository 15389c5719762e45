package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/eve-tools/vgi/appid"
	"github.com/eve-tools/vgi/capture"
	"github.com/eve-tools/vgi/shortcuts"
	"github.com/eve-tools/vgi/state"
	"github.com/eve-tools/vgi/steam"
	"github.com/eve-tools/vgi/textvdf"
	"github.com/eve-tools/vgi/vdf"
)

// compatPath locates Steam's compatibility tool table inside
// config.vdf.
var compatPath = []string{"InstallConfigStore", "Software", "Valve", "Steam", "CompatToolMapping"}

type installConfig struct {
	*cli.Command
	root *rootConfig

	SteamRoot string `cli:"name=steam-root desc='Steam root (e.g. ~/.local/share/Steam)'"`
	CompatID  string `cli:"name=compatdata-id desc='compatdata folder to search (default 8500)'"`
	Prefix    string `cli:"name=prefix desc='Proton prefix root (.../compatdata/<id>/pfx)'"`
	Exe       string `cli:"name=exe desc='path inside the prefix to start_protected_game.exe'"`
	Name      string `cli:"name=name desc='shortcut name'"`
	Icon      string `cli:"name=icon desc='icon path'"`
	Proton    string `cli:"name=proton desc='Steam Play tool to use'"`
	Priority  int    `cli:"name=priority desc='compat tool priority'"`
	Tag       string `cli:"name=tag desc='collection tag applied to new shortcuts'"`
	Timeout   int    `cli:"name=timeout desc='seconds to wait when capturing launch args; 0 skips capture'"`
	Match     string `cli:"name=match desc='expression selecting the process to capture from'"`
	DryRun    bool   `cli:"name=dry-run desc='preview changes without writing'"`
	NoPrompt  bool   `cli:"name=no-prompt desc='disable prompts on discovery failure'"`
	Force     bool   `cli:"name=force desc='bypass the Steam-running check'"`
}

func InstallCommand(root *rootConfig) *cli.Command {
	cfg := &installConfig{
		root:     root,
		CompatID: defaultCompatID,
		Name:     defaultName,
		Proton:   defaultProton,
		Priority: defaultPriority,
		Tag:      defaultTag,
		Timeout:  defaultTimeout,
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "install").
		WithAliases("i", "in").
		WithSynopsis("install [opts]").
		WithDescription("install or update the EVE Vanguard shortcut, capture launch args, set Proton").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *installConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", cli.ErrUsage, args)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := newStyles(cc.Out)
	fmt.Fprintln(cc.Out, st.Dim(disclaimer))

	if !cfg.DryRun && !cfg.Force {
		up, err := steam.Running(ctx)
		if err != nil {
			slog.Warn("steam process check failed", "err", err)
		}
		if up {
			return errors.New("exit Steam before running, or pass -force")
		}
	}

	saved, err := state.Load()
	if err != nil {
		slog.Warn("ignoring unreadable saved state", "err", err)
		saved = &state.State{}
	}

	res, err := cfg.resolveSteam(cc, saved)
	if err != nil {
		return err
	}
	slog.Info("using steam profile", "root", res.install.Root, "profile", res.profile)

	prefix, exeRel, err := cfg.resolveGame(cc, saved, res.install)
	if err != nil {
		return err
	}
	exeAbs := filepath.Join(prefix, filepath.FromSlash(exeRel))
	startDir := filepath.Dir(exeAbs)
	slog.Info("resolved game launcher", "exe", exeAbs)

	tail := ""
	if !cfg.DryRun {
		tail, err = cfg.captureArgs(ctx, cc)
		if err != nil {
			return err
		}
	}

	if !cfg.DryRun && !cfg.Force {
		fmt.Fprintln(cc.Out, "Waiting for Steam to exit before writing.")
		if err := capture.WaitSteamExit(ctx, 0, steam.Running); err != nil {
			return err
		}
	}

	doc, err := shortcuts.Load(res.shortcutsVDF)
	if err != nil {
		return fmt.Errorf("reading %s: %w", res.shortcutsVDF, err)
	}
	before := vdf.Render(doc)
	key, err := shortcuts.Upsert(doc, cfg.Name, exeAbs, tail, shortcuts.Options{
		StartDir: startDir,
		Icon:     cfg.Icon,
		Tag:      cfg.Tag,
	})
	if err != nil {
		return err
	}

	id := appid.ForShortcut(exeAbs, cfg.Name)

	cfgFile, cfgBefore, err := loadConfigVDF(res.configVDF)
	if err != nil {
		return err
	}
	err = cfgFile.SetBlockEntry(compatPath, strconv.FormatUint(uint64(id), 10), []textvdf.KeyVal{
		{Key: "name", Val: cfg.Proton},
		{Key: "config", Val: ""},
		{Key: "Priority", Val: strconv.Itoa(cfg.Priority)},
	})
	if err != nil {
		return fmt.Errorf("updating %s: %w", res.configVDF, err)
	}

	if cfg.DryRun {
		fmt.Fprintln(cc.Out, st.Head("dry run: %s", res.shortcutsVDF))
		fmt.Fprint(cc.Out, lineDiff(st, before, vdf.Render(doc)))
		fmt.Fprintln(cc.Out, st.Head("dry run: %s", res.configVDF))
		fmt.Fprint(cc.Out, lineDiff(st, cfgBefore, cfgFile.String()))
		return nil
	}

	bak, err := shortcuts.Persist(res.shortcutsVDF, doc)
	if err != nil {
		return err
	}
	if bak != "" {
		slog.Info("backed up shortcuts.vdf", "path", bak)
	}
	cfgBak, err := shortcuts.PersistBytes(res.configVDF, cfgFile.Bytes())
	if err != nil {
		return err
	}
	if cfgBak != "" {
		slog.Info("backed up config.vdf", "path", cfgBak)
	}

	if err := state.Save(&state.State{
		SteamRoot:    res.install.Root,
		ProfileID:    res.profile,
		ShortcutsVDF: res.shortcutsVDF,
		ConfigVDF:    res.configVDF,
		Prefix:       prefix,
		ExeRel:       exeRel,
		Name:         cfg.Name,
		AppID:        id,
		Proton:       cfg.Proton,
		Priority:     cfg.Priority,
		CompatDataID: cfg.CompatID,
	}); err != nil {
		slog.Warn("state not saved", "err", err)
	}

	fmt.Fprintln(cc.Out, st.Good("Shortcut %q installed at index %s", cfg.Name, key))
	fmt.Fprintf(cc.Out, "  exe            %s\n", exeAbs)
	if tail != "" {
		fmt.Fprintf(cc.Out, "  LaunchOptions  %s\n", tail)
	}
	fmt.Fprintf(cc.Out, "  AppID          %d\n", id)
	fmt.Fprintf(cc.Out, "  rungameid      %s\n", appid.URL(id))
	fmt.Fprintf(cc.Out, "  Proton         %s (priority %d)\n", cfg.Proton, cfg.Priority)
	fmt.Fprintln(cc.Out, "Start Steam and launch the new shortcut.")
	return nil
}

type resolvedSteam struct {
	install      *steam.Install
	profile      string
	shortcutsVDF string
	configVDF    string
}

// resolveSteam reuses the saved paths when they still exist,
// otherwise discovers the Steam root and picks the most recently
// used profile, prompting as a last resort.
func (cfg *installConfig) resolveSteam(cc *cli.Context, saved *state.State) (*resolvedSteam, error) {
	if cfg.SteamRoot == "" && saved.Resolved() && isDir(saved.SteamRoot) {
		return &resolvedSteam{
			install:      &steam.Install{Root: saved.SteamRoot},
			profile:      saved.ProfileID,
			shortcutsVDF: saved.ShortcutsVDF,
			configVDF:    saved.ConfigVDF,
		}, nil
	}
	inst, err := steam.Discover(expandHome(cfg.SteamRoot))
	if errors.Is(err, steam.ErrNotFound) {
		fmt.Fprintln(cc.Out, "Steam installation not found automatically.")
		hint, perr := cfg.prompt(cc, "Enter Steam root (e.g. ~/.local/share/Steam): ")
		if perr != nil {
			return nil, fmt.Errorf("%v: %w", perr, err)
		}
		inst, err = steam.Discover(expandHome(hint))
	}
	if err != nil {
		return nil, err
	}
	profiles, err := inst.Profiles()
	if err != nil {
		return nil, err
	}
	p := steam.MostRecent(profiles)
	return &resolvedSteam{
		install:      inst,
		profile:      p.ID,
		shortcutsVDF: p.ShortcutsPath(),
		configVDF:    inst.ConfigVDF(),
	}, nil
}

// resolveGame settles the Proton prefix and the launcher path inside
// it, in order: flags, saved state, compatdata search, prompt.
func (cfg *installConfig) resolveGame(cc *cli.Context, saved *state.State, inst *steam.Install) (string, string, error) {
	prefix := expandHome(cfg.Prefix)
	if prefix == "" {
		prefix = saved.Prefix
	}
	exeRel := saved.ExeRel
	if cfg.Exe != "" {
		rel := filepath.ToSlash(cfg.Exe)
		if !strings.EqualFold(filepath.Base(rel), steam.EACLauncher) {
			return "", "", fmt.Errorf("%w: -exe must point to %s inside the prefix", cli.ErrUsage, steam.EACLauncher)
		}
		exeRel = rel
	}

	if !validRel(prefix, exeRel) {
		prefix, exeRel = cfg.discoverGame(inst)
	}
	if prefix == "" || exeRel == "" {
		fmt.Fprintln(cc.Out, "Could not auto-discover the game under any Steam library.")
		p, err := cfg.prompt(cc, "Enter the Proton prefix (.../compatdata/<id>/pfx): ")
		if err != nil {
			return "", "", err
		}
		r, err := cfg.prompt(cc, fmt.Sprintf("Enter the path to %s relative to that prefix: ", steam.EACLauncher))
		if err != nil {
			return "", "", err
		}
		prefix, exeRel = expandHome(p), filepath.ToSlash(r)
	}
	if !validRel(prefix, exeRel) {
		return "", "", fmt.Errorf("no %s at %s under %s; use -compatdata-id or -prefix to be explicit",
			steam.EACLauncher, exeRel, prefix)
	}
	return prefix, exeRel, nil
}

// discoverGame searches every Steam library's compatdata for the
// configured id and walks its prefix for the launcher.
func (cfg *installConfig) discoverGame(inst *steam.Install) (string, string) {
	pfx, err := inst.CompatPrefix(cfg.CompatID)
	if err != nil {
		slog.Debug("no compat prefix", "id", cfg.CompatID, "err", err)
		return "", ""
	}
	exe, err := steam.FindGameExe(pfx)
	if err != nil {
		slog.Debug("launcher not found in prefix", "prefix", pfx, "err", err)
		return "", ""
	}
	rel, err := filepath.Rel(pfx, exe)
	if err != nil {
		return "", ""
	}
	return pfx, filepath.ToSlash(rel)
}

func (cfg *installConfig) captureArgs(ctx context.Context, cc *cli.Context) (string, error) {
	if cfg.Timeout <= 0 {
		return "", nil
	}
	fmt.Fprintln(cc.Out, "Waiting to capture runtime args: launch EVE Vanguard via the EVE launcher now.")
	cctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
	defer cancel()
	tail, err := capture.Args(cctx, capture.Config{Match: cfg.Match})
	if err != nil {
		if errors.Is(err, capture.ErrNoCapture) {
			slog.Info("no arguments captured within timeout, proceeding without LaunchOptions")
			return "", nil
		}
		return "", err
	}
	slog.Info("captured runtime args", "args", tail)
	return tail, nil
}

// loadConfigVDF reads config.vdf, synthesizing the standard root
// block when the file does not exist yet. The second result is the
// prior text for dry-run diffs.
func loadConfigVDF(path string) (*textvdf.File, string, error) {
	f, err := textvdf.Load(path)
	if os.IsNotExist(err) {
		return textvdf.Parse([]byte("\"InstallConfigStore\"\n{\n}\n")), "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return f, f.String(), nil
}

func validRel(prefix, exeRel string) bool {
	if prefix == "" || exeRel == "" {
		return false
	}
	exe := filepath.Join(prefix, filepath.FromSlash(exeRel))
	return steam.ValidateGameExe(prefix, exe) == nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}
