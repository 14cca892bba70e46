package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Render the OpenAPI description of an API surface to a file."`
	Serve   ServeCmd   `cmd:"" help:"Serve the OpenAPI description over HTTP."`
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blazon"),
		kong.Description("Blazon CLI for synthesizing OpenAPI descriptions of method registries."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
