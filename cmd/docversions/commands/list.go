package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/docversions/internal/config"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	SelectionFlags `embed:""`
	Format         string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

type listedVersion struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (c *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.overrides())
	if err != nil {
		return err
	}
	if err := config.ValidateFor(cfg, config.PurposeList); err != nil {
		return err
	}

	res, err := resolve(context.Background(), cfg)
	if err != nil {
		return err
	}

	out := g.stdout()
	if c.Format == "json" {
		listed := make([]listedVersion, 0, len(res.Order))
		for _, name := range res.Order {
			listed = append(listed, listedVersion{Name: name, URL: res.URLs[name]})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listed)
	}

	for _, name := range res.Order {
		if cfg.BaseURL != "" {
			fmt.Fprintf(out, "%s\t%s\n", name, res.URLs[name])
			continue
		}
		fmt.Fprintln(out, name)
	}
	return nil
}
