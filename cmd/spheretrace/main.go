package main

import (
	"os"

	"github.com/urfave/cli"
)

func newApp() *cli.App {
	// The default version flag claims -v, which is the verbose flag here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spheretrace"
	app.Usage = "render hard-coded sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = logFlags
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Trace a built-in scene and write the tone-mapped frame to disk. The output format
is picked from the file extension (.ppm or .png).

By default the frame is rendered progressively in tiles on every CPU; each pass
raises the samples per pixel until --spp is reached. Interrupting the render keeps
the last completed pass.`,
			Flags:  renderFlags,
			Action: RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: ListScenes,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
