package main

import (
	"log/slog"

	"git.home.luguber.info/inful/gbsaprep/cmd/gbsaprep/commands"
	"git.home.luguber.info/inful/gbsaprep/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("gbsaprep"),
		kong.Description("Generate MM-GBSA input files and trajectory stripping jobs for mutation simulation trees."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
		kong.Bind(cli),
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()})
	ctx.FatalIfErrorf(err)
}
