package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docversions/cmd/docversions/commands"
	"git.home.luguber.info/inful/docversions/internal/config"
	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/version"
)

func main() {
	// .env values must be visible before kong resolves env-backed flags.
	config.LoadEnv()

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("docversions"),
		kong.Description("Inject a versions dropdown into every page of a multi-version documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Stdout: os.Stdout}
	if err := ctx.Run(global, &cli); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, nil)
		os.Exit(adapter.Report(os.Stderr, err))
	}
}
