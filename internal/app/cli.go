package app

import "github.com/alecthomas/kong"

// CLI is the command line grammar. Flag defaults come from the environment (see config.Load).
type CLI struct {
	Sources string           `short:"s" name:"sources" help:"Directory holding the <category>.md files." default:"${sources_dir}"`
	Output  string           `short:"o" name:"output" help:"Generated page, overwritten on every build." default:"${output_file}"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit."`

	Build      BuildCmd      `cmd:"" default:"1" help:"Render the sources into the page (default command)."`
	Serve      ServeCmd      `cmd:"" help:"Build, serve the page locally and rebuild when sources change."`
	Categories CategoriesCmd `cmd:"" help:"List the categories in page order."`
}

type BuildCmd struct{}

func (c *BuildCmd) Run(a *App) error {
	_, err := a.Build()
	return err
}

type ServeCmd struct {
	Listen string `short:"l" name:"listen" help:"Address the preview server listens on." default:"${listen_port}"`
}

func (c *ServeCmd) Run(a *App) error {
	ctx, stop := signalContext()
	defer stop()
	return a.Serve(ctx, c.Listen)
}

type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(a *App) error {
	return a.ListCategories(a.stdout)
}
