package main

import (
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/stdlinks/cmd/stdlinks/commands"
	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("stdlinks"),
		kong.Description("mdbook preprocessor that turns Rust standard library shorthand links into documentation links."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(commands.StdGlobal()),
	)

	err := ctx.Run()
	if stderrors.Is(err, commands.ErrUnsupported) {
		os.Exit(1)
	}
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
