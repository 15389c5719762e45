package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/eve-tools/vgi/appid"
)

type appidConfig struct {
	*cli.Command
	root *rootConfig

	Name string `cli:"name=name desc='shortcut name'"`
}

func AppIDCommand(root *rootConfig) *cli.Command {
	cfg := &appidConfig{root: root, Name: defaultName}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "appid").
		WithSynopsis("appid [-name name] <exe>").
		WithDescription("print the shortcut AppID and rungameid for a name and exe pair").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *appidConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: appid requires exactly one exe argument", cli.ErrUsage)
	}
	id := appid.ForShortcut(args[0], cfg.Name)
	fmt.Fprintf(cc.Out, "AppID      %d\n", id)
	fmt.Fprintf(cc.Out, "rungameid  %d\n", appid.RunGameID(id))
	fmt.Fprintf(cc.Out, "url        %s\n", appid.URL(id))
	return nil
}
