// Package capture observes the process table for the running game
// and captures the command-line arguments its launcher passed, the
// one blocking collaborator in the pipeline. Callers bound every
// call with a context deadline.
package capture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/eve-tools/vgi/debug"
)

// DefaultMarker is the game's shipping binary. A process whose
// command line mentions it is the one to capture from.
const DefaultMarker = "EVEVanguardClient-Win64-Shipping.exe"

// Env is the variable set a -match expression sees.
type Env map[string]any

type Config struct {
	// Marker selects the process by command-line substring;
	// DefaultMarker when empty.
	Marker string
	// Match, when set, replaces the marker heuristic with a boolean
	// expression over pid, name, exe and cmdline.
	Match string
	// Interval between process-table scans; 2s when zero.
	Interval time.Duration
}

func (c *Config) interval() time.Duration {
	if c.Interval <= 0 {
		return 2 * time.Second
	}
	return c.Interval
}

func (c *Config) marker() string {
	if c.Marker == "" {
		return DefaultMarker
	}
	return c.Marker
}

// Args blocks until a matching process appears, then returns its
// argument tail with surrounding quotes stripped. The context
// deadline bounds the wait; expiry yields ErrNoCapture.
func Args(ctx context.Context, cfg Config) (string, error) {
	var prg *vm.Program
	if cfg.Match != "" {
		var err error
		prg, err = expr.Compile(cfg.Match)
		if err != nil {
			return "", fmt.Errorf("compiling match expression: %w", err)
		}
	}
	tick := time.NewTicker(cfg.interval())
	defer tick.Stop()
	for {
		args, ok, err := scan(ctx, &cfg, prg)
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("%w: %v", ErrNoCapture, ctx.Err())
			}
			return "", err
		}
		if ok {
			return args, nil
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrNoCapture, ctx.Err())
		case <-tick.C:
		}
	}
}

func scan(ctx context.Context, cfg *Config, prg *vm.Program) (string, bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "", false, err
	}
	for _, p := range procs {
		argv, err := p.CmdlineSliceWithContext(ctx)
		if err != nil || len(argv) == 0 {
			continue
		}
		cmdline := strings.Join(argv, " ")
		if prg != nil {
			ok, err := runMatch(ctx, prg, p, cmdline)
			if err != nil {
				return "", false, err
			}
			if !ok {
				continue
			}
			if debug.Capture() {
				debug.Logf("capture: match expression hit pid %d", p.Pid)
			}
			return trimTail(strings.Join(argv[1:], " ")), true, nil
		}
		tail, ok := Tail(cmdline, cfg.marker())
		if !ok {
			continue
		}
		if debug.Capture() {
			debug.Logf("capture: marker %q hit pid %d", cfg.marker(), p.Pid)
		}
		return tail, true, nil
	}
	return "", false, nil
}

func runMatch(ctx context.Context, prg *vm.Program, p *process.Process, cmdline string) (bool, error) {
	name, _ := p.NameWithContext(ctx)
	exe, _ := p.ExeWithContext(ctx)
	env := Env{
		"pid":     int(p.Pid),
		"name":    name,
		"exe":     exe,
		"cmdline": cmdline,
	}
	res, err := vm.Run(prg, env)
	if err != nil {
		return false, fmt.Errorf("running match expression: %w", err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("match expression returned %T, want bool", res)
	}
	return b, nil
}

// Tail returns everything in cmdline after the first occurrence of
// marker, trimmed, with one pair of surrounding quotes removed.
// Windows paths compare case-insensitively. The second result is
// false when the marker does not occur.
func Tail(cmdline, marker string) (string, bool) {
	i := strings.Index(strings.ToLower(cmdline), strings.ToLower(marker))
	if i < 0 {
		return "", false
	}
	return trimTail(cmdline[i+len(marker):]), true
}

// trimTail strips surrounding whitespace and one pair of quotes, the
// way launchers often wrap the whole argument tail.
func trimTail(tail string) string {
	tail = strings.TrimSpace(tail)
	for _, q := range []string{`"`, `'`} {
		if len(tail) >= 2 && strings.HasPrefix(tail, q) && strings.HasSuffix(tail, q) {
			tail = tail[1 : len(tail)-1]
			break
		}
	}
	return strings.TrimSpace(tail)
}

// WaitSteamExit blocks until running reports no Steam client process,
// so the files Steam rewrites on exit are settled before editing them.
func WaitSteamExit(ctx context.Context, interval time.Duration, running func(context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		up, err := running(ctx)
		if err != nil {
			return err
		}
		if !up {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
