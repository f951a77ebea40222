package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/imageio"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var (
	defaultRender      = renderer.DefaultConfig()
	defaultIntegrator  = integrator.DefaultConfig()
	defaultProgressive = renderer.DefaultProgressiveConfig()
)

var renderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: scene.DefaultSceneName,
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: defaultRender.Width,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: defaultRender.Height,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: defaultRender.SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "bounces",
		Value: defaultIntegrator.MaxBounces,
		Usage: "bounces per path; a path has at most bounces+1 segments",
	},
	cli.Float64Flag{
		Name:  "exposure",
		Value: defaultRender.Exposure,
		Usage: "camera exposure for tone-mapping",
	},
	cli.Float64Flag{
		Name:  "fov",
		Value: defaultRender.FOV,
		Usage: "horizontal field of view in degrees",
	},
	cli.BoolFlag{
		Name:  "russian-roulette, rr",
		Usage: "terminate low-throughput paths early",
	},
	cli.BoolFlag{
		Name:  "no-jitter",
		Usage: "sample pixel centers instead of random positions",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: defaultRender.Seed,
		Usage: "random seed",
	},
	cli.BoolFlag{
		Name:  "sequential",
		Usage: "render on a single goroutine from one random sequence",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: defaultProgressive.NumWorkers,
		Usage: "parallel workers for progressive rendering (0 = one per CPU)",
	},
	cli.IntFlag{
		Name:  "tile-size",
		Value: defaultProgressive.TileSize,
		Usage: "tile size in pixels for progressive rendering",
	},
	cli.IntFlag{
		Name:  "passes",
		Value: defaultProgressive.MaxPasses,
		Usage: "maximum number of progressive passes",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "frame.ppm",
		Usage: "image filename for the rendered frame (.ppm or .png)",
	},
}

// renderOptions collects everything the render command reads from its flags.
type renderOptions struct {
	Scene       string
	Out         string
	Sequential  bool
	Render      renderer.Config
	Integrator  integrator.Config
	Progressive renderer.ProgressiveConfig
}

func optionsFromContext(ctx *cli.Context) renderOptions {
	opts := renderOptions{
		Scene:       ctx.String("scene"),
		Out:         ctx.String("out"),
		Sequential:  ctx.Bool("sequential"),
		Render:      renderer.DefaultConfig(),
		Integrator:  integrator.DefaultConfig(),
		Progressive: renderer.DefaultProgressiveConfig(),
	}

	opts.Render.Width = ctx.Int("width")
	opts.Render.Height = ctx.Int("height")
	opts.Render.SamplesPerPixel = ctx.Int("spp")
	opts.Render.Exposure = ctx.Float64("exposure")
	opts.Render.FOV = ctx.Float64("fov")
	opts.Render.Jitter = !ctx.Bool("no-jitter")
	opts.Render.Seed = ctx.Int64("seed")

	opts.Integrator.MaxBounces = ctx.Int("bounces")
	opts.Integrator.RussianRoulette = ctx.Bool("russian-roulette")

	opts.Progressive.NumWorkers = ctx.Int("workers")
	opts.Progressive.TileSize = ctx.Int("tile-size")
	opts.Progressive.MaxPasses = ctx.Int("passes")

	return opts
}

// passTiming is one row of the statistics table.
type passTiming struct {
	Pass     int
	Stats    renderer.RenderStats
	Duration time.Duration
}

// RenderFrame renders a still frame and saves it.
func RenderFrame(ctx *cli.Context) error {
	closeLog, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closeLog()
	opts := optionsFromContext(ctx)

	sc, err := scene.Create(opts.Scene)
	if err != nil {
		return err
	}
	tracer, err := integrator.NewPathTracer(sc, opts.Integrator)
	if err != nil {
		return err
	}
	traceConfig := tracer.Config()
	logger.Noticef(`rendering scene "%s" (%d spheres) at %dx%d with %d spp, %d bounces, russian roulette %t`,
		tracer.Scene().Name(), len(tracer.Scene().Spheres()), opts.Render.Width, opts.Render.Height,
		opts.Render.SamplesPerPixel, traceConfig.MaxBounces, traceConfig.RussianRoulette)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	var img *image.RGBA
	var timings []passTiming
	if opts.Sequential {
		img, timings, err = renderSequential(tracer, opts.Render)
	} else {
		img, timings, err = renderProgressive(runCtx, tracer, opts)
	}
	if err != nil {
		return err
	}

	if err := imageio.Save(opts.Out, img); err != nil {
		return err
	}
	logger.Noticef("wrote %s", opts.Out)

	displayFrameStats(timings, time.Since(start))
	return nil
}

func renderSequential(tracer renderer.Tracer, config renderer.Config) (*image.RGBA, []passTiming, error) {
	rt, err := renderer.NewRaytracer(tracer, config)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	img, stats := rt.RenderPass()
	return img, []passTiming{{Pass: 1, Stats: stats, Duration: time.Since(start)}}, nil
}

// renderProgressive returns the last completed pass. An interrupted render keeps
// what it has; it fails only if no pass finished.
func renderProgressive(ctx context.Context, tracer renderer.Tracer, opts renderOptions) (*image.RGBA, []passTiming, error) {
	pr, err := renderer.NewProgressiveRaytracer(tracer, opts.Render, opts.Progressive, log.New("renderer"))
	if err != nil {
		return nil, nil, err
	}
	defer pr.Close()
	logger.Infof("progressive render: %d passes on %d workers", pr.NumPasses(), pr.NumWorkers())

	var img *image.RGBA
	var timings []passTiming
	passes, errs := pr.RenderProgressive(ctx)
	for result := range passes {
		img = result.Image
		timings = append(timings, passTiming{Pass: result.PassNumber, Stats: result.Stats, Duration: result.Duration})
	}

	if err := <-errs; err != nil {
		if !errors.Is(err, context.Canceled) || img == nil {
			return nil, nil, err
		}
		logger.Warningf("render interrupted, keeping pass %d of %d", len(timings), pr.NumPasses())
	}
	return img, timings, nil
}

func displayFrameStats(timings []passTiming, total time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Samples/pixel", "Min", "Max", "Avg luminance", "Render time"})
	for _, t := range timings {
		table.Append([]string{
			fmt.Sprintf("%d", t.Pass),
			fmt.Sprintf("%.1f", t.Stats.AverageSamples),
			fmt.Sprintf("%d", t.Stats.MinSamples),
			fmt.Sprintf("%d", t.Stats.MaxSamplesUsed),
			fmt.Sprintf("%.4f", t.Stats.AverageLuminance),
			t.Duration.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL", total.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
