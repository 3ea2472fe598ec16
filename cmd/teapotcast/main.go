// Package main provides the CLI entry point for teapotcast.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/teapotcast/pkg/adapters/filesink"
	"github.com/user/teapotcast/pkg/adapters/ggrenderer"
	"github.com/user/teapotcast/pkg/adapters/headless"
	"github.com/user/teapotcast/pkg/adapters/logger"
	"github.com/user/teapotcast/pkg/adapters/nullsink"
	"github.com/user/teapotcast/pkg/adapters/osfilesystem"
	"github.com/user/teapotcast/pkg/adapters/systemclock"
	"github.com/user/teapotcast/pkg/adapters/wobble"
	"github.com/user/teapotcast/pkg/config"
	"github.com/user/teapotcast/pkg/motion"
	"github.com/user/teapotcast/pkg/orchestrator"
	"github.com/user/teapotcast/pkg/ports"
	"github.com/user/teapotcast/pkg/renderloop"
	"github.com/user/teapotcast/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "teapotcast",
		Usage:   l10n.T("Render an animated teapot as a synthetic video source"),
		Version: version,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  l10n.T("Produce frames for a duration"),
				Flags:  append(commonFlags(), runFlags()...),
				Action: runAction,
			},
			{
				Name:   "caps",
				Usage:  l10n.T("Print the negotiated capture format"),
				Flags:  commonFlags(),
				Action: capsAction,
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T("Configuration")},
		&cli.Float64Flag{Name: "tick-rate", Usage: l10n.T("Base ticks per second"), Category: l10n.T("Timing")},
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Host width in points"), Category: l10n.T("Surface")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Host height in points"), Category: l10n.T("Surface")},
		&cli.Float64Flag{Name: "scale", Usage: l10n.T("Pixels per point"), Category: l10n.T("Surface")},
		&cli.StringSliceFlag{Name: "format", Usage: l10n.T("Offered pixel formats, preferred first (rgba, bgra, argb)"), Category: l10n.T("Capture")},
		&cli.StringSliceFlag{Name: "resolution", Usage: l10n.T("Offered resolutions, preferred first (e.g. 640x480)"), Category: l10n.T("Capture")},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Directory for frame images (frames are discarded when empty)"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "image-format", Usage: l10n.T("Frame image format (png, jpeg)"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "log-level", Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: l10n.T("Run time, 0 runs until interrupted"), Category: l10n.T("Timing")},
		&cli.IntFlag{Name: "interval", Aliases: []string{"n"}, Usage: l10n.T("Ticks per produced frame"), Category: l10n.T("Timing")},
		&cli.IntFlag{Name: "every", Usage: l10n.T("Write one frame image out of every N"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown run summary to this path"), Category: l10n.T("Output")},
		&cli.BoolFlag{Name: "no-motion", Usage: l10n.T("Disable the synthetic orientation source"), Category: l10n.T("Scene")},
		&cli.BoolFlag{Name: "watch", Usage: l10n.T("Apply frame_interval changes from the configuration file while running"), Category: l10n.T("Configuration")},
	}
}

// loadConfig reads the configuration file, if any, and applies flag
// overrides on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("tick-rate") {
		cfg.TickRate = c.Float64("tick-rate")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Float64("scale")
	}
	if c.IsSet("format") {
		cfg.Formats = c.StringSlice("format")
	}
	if c.IsSet("resolution") {
		cfg.Resolutions = c.StringSlice("resolution")
	}
	if c.IsSet("output") {
		cfg.Output.Dir = c.String("output")
	}
	if c.IsSet("image-format") {
		cfg.Output.Format = c.String("image-format")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("duration") {
		cfg.Duration = c.Duration("duration")
	}
	if c.IsSet("interval") {
		cfg.FrameInterval = c.Int("interval")
	}
	if c.IsSet("every") {
		cfg.Output.Every = c.Int("every")
	}
	if c.Bool("no-motion") {
		cfg.Motion.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
}

// buildSink returns the frame sink for cfg and a short description of it.
func buildSink(cfg config.Config, fs ports.FileSystem, log ports.Logger) (ports.FrameSink, string, error) {
	if cfg.Output.Dir == "" {
		return nullsink.New(), "null", nil
	}
	opts, err := cfg.ToFileSinkOptions()
	if err != nil {
		return nil, "", err
	}
	log.Info("Writing frames to %s", cfg.Output.Dir)
	return filesink.New(cfg.Output.Dir, fs, opts), string(opts.Format) + ":" + cfg.Output.Dir, nil
}

func buildController(cfg config.Config, sink ports.FrameSink, clock ports.Clock, holder *motion.Holder, log ports.Logger) (*renderloop.Controller, error) {
	rcfg, err := cfg.ToControllerConfig()
	if err != nil {
		return nil, err
	}
	renderer := &ggrenderer.Renderer{FontPath: cfg.FontPath}
	host := headless.New(cfg.Width, cfg.Height, cfg.Scale)
	return renderloop.New(rcfg, host, renderer, sink, clock, holder, log), nil
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	clock := systemclock.New()
	holder := motion.NewHolder(motion.Sample{Y: -1})

	sink, sinkDesc, err := buildSink(cfg, fs, log)
	if err != nil {
		return err
	}
	controller, err := buildController(cfg, sink, clock, holder, log)
	if err != nil {
		return err
	}

	var source orchestrator.MotionSource
	if cfg.Motion.Enabled {
		source = wobble.New(cfg.ToWobbleConfig(), holder, clock, log)
	}
	orch := orchestrator.New(controller, source, log)

	if path := c.String("config"); c.Bool("watch") && path != "" {
		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		updates, err := config.Watch(watchCtx, path, log)
		if err != nil {
			return err
		}
		orch.WithIntervalUpdates(config.FrameIntervals(watchCtx, updates))
	}

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		return err
	}

	if path := c.String("summary"); path != "" {
		summary := summarizer.NewBuilder().
			WithResult(result).
			WithSink(sinkDesc, cfg.Motion.Enabled).
			Build()
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
		if err := writer.Write(path, summary); err != nil {
			return err
		}
		log.Info("Summary saved to %s", path)
	}
	return nil
}

func capsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	sink, _, err := buildSink(cfg, osfilesystem.New(), log)
	if err != nil {
		return err
	}
	controller, err := buildController(cfg, sink, systemclock.New(), nil, log)
	if err != nil {
		return err
	}

	capability, err := controller.Negotiate()
	if err != nil {
		return err
	}
	fmt.Println(capability)
	return nil
}
