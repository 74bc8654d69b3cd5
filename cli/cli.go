package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/packrat/cli/cmd"
	"github.com/ardnew/packrat/pkg"
)

// CLI is the top-level command-line interface for packrat.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Parse    cmd.Parse    `cmd:"" default:"withargs" help:"Parse input with a reference grammar"`
	Grammars cmd.Grammars `cmd:""                    help:"List reference grammars"`
	Scale    cmd.Scale    `cmd:""                    help:"Compare memoized and plain evaluation counts"`
	Calc     cmd.Calc     `cmd:""                    help:"Evaluate an integer arithmetic expression"`
	Repl     cmd.Repl     `cmd:""                    help:"Parse input interactively"`
	Init     cmd.Init     `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the packrat CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logging flags are applied before kong parses anything so that parse
	// errors are reported with the requested logger.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}
