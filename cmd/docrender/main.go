// Command docrender renders API reference documentation and markdown topics
// into an HTML or Markdown site.
package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docrender/cmd/docrender/commands"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("docrender"),
		kong.Description("Render API reference documentation and topics through page templates."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := &commands.Global{Logger: slog.Default()}
	err := parser.Run(global, &cli)
	derrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}
