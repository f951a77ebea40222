package main

import (
	"fmt"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("spheretrace")

var logFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "v",
		Usage: "enable verbose logging",
	},
	cli.BoolFlag{
		Name:  "vv",
		Usage: "enable even more verbose logging",
	},
	cli.BoolFlag{
		Name:  "quiet, q",
		Usage: "only log warnings and errors",
	},
	cli.StringFlag{
		Name:  "log-level",
		Value: log.Notice.String(),
		Usage: "log level: debug, info, notice, warning or error",
	},
	cli.StringFlag{
		Name:  "log-file",
		Usage: "append log output to this file instead of stdout",
	},
}

// logLevel resolves the verbosity flags; -vv beats -v, which beats -q and --log-level.
func logLevel(ctx *cli.Context) (log.Level, error) {
	switch {
	case ctx.GlobalBool("vv"):
		return log.Debug, nil
	case ctx.GlobalBool("v"):
		return log.Info, nil
	case ctx.GlobalBool("quiet"):
		return log.Warning, nil
	}
	return log.ParseLevel(ctx.GlobalString("log-level"))
}

// setupLogging applies the global logging flags. The returned function restores
// stdout and closes the log file, if one was opened.
func setupLogging(ctx *cli.Context) (func(), error) {
	level, err := logLevel(ctx)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	path := ctx.GlobalString("log-file")
	if path == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetSink(f)
	return func() {
		log.SetSink(os.Stdout)
		f.Close()
	}, nil
}
