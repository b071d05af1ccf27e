package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docversions/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing configuration file"`
	Path  string `arg:"" optional:"" default:"docversions.yaml" help:"Where to write the configuration file" type:"path"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	out := g.stdout()
	fmt.Fprintf(out, "Writing configuration to %s\n", i.Path)
	if err := config.Init(i.Path, i.Force); err != nil {
		fmt.Fprintln(out, "Initialization failed")
		return err
	}
	fmt.Fprintln(out, "initialized successfully")
	return nil
}
