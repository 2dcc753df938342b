package main

import (
	"github.com/alecthomas/kong"

	"github.com/alex-schaaf/alex-schaaf.github.io/cmd/blogbuilder/commands"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogbuilder"),
		kong.Description("Build a personal blog from Markdown content"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{}, cli)
	ctx.FatalIfErrorf(err)
}
