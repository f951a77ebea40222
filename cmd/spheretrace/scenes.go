package main

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	closeLog, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closeLog()

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Spheres", "Lights", "Description"})
	for _, info := range scene.List() {
		s, err := scene.Create(info.Name)
		if err != nil {
			return err
		}
		name := info.Name
		if name == scene.DefaultSceneName {
			name += " (default)"
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", len(s.Spheres())),
			fmt.Sprintf("%d", s.EmissiveCount()),
			info.Description,
		})
	}
	table.Render()
	return nil
}
