package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docversions/internal/config"
	"git.home.luguber.info/inful/docversions/internal/observability"
	"git.home.luguber.info/inful/docversions/internal/searchindex"
	"git.home.luguber.info/inful/docversions/internal/versions"
)

// RewriteSearchCmd implements the 'rewrite-search' command.
type RewriteSearchCmd struct {
	SelectionFlags `embed:""`
}

func (c *RewriteSearchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.overrides())
	if err != nil {
		return err
	}
	if err := config.ValidateFor(cfg, config.PurposeRewriteSearch); err != nil {
		return err
	}

	ctx := observability.WithRunID(context.Background(), observability.NewRunID())
	res, err := resolve(ctx, cfg)
	if err != nil {
		return err
	}

	out := g.stdout()
	for _, r := range searchindex.RewriteAll(ctx, cfg.Root, versions.Order(res.Matched), cfg.BaseURL) {
		switch {
		case r.Error != "":
			fmt.Fprintf(out, "❌ %s: %s\n", r.Path, r.Error)
		case r.Changed:
			fmt.Fprintf(out, "Updated URLs in %s\n", r.Path)
		default:
			fmt.Fprintf(out, "No URLs to update in %s\n", r.Path)
		}
	}
	return nil
}
