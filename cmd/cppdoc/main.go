package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cppdoc/internal/analyzer"
	"git.home.luguber.info/inful/cppdoc/internal/builder"
	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/prebuild"
	"git.home.luguber.info/inful/cppdoc/internal/watch"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Build struct {
		Input        string `short:"i" help:"Project directory containing flash.toml" default:"."`
		Output       string `short:"o" help:"Output directory for the generated site" default:"./dist"`
		URL          string `help:"Base URL the site will be served from, e.g. https://docs.example.com"`
		SkipPrebuild bool   `help:"Skip the configured prebuild commands"`
	} `cmd:"" help:"Build the documentation site once"`

	Watch struct {
		Input    string        `short:"i" help:"Project directory containing flash.toml" default:"."`
		Output   string        `short:"o" help:"Output directory for the generated site" default:"./dist"`
		URL      string        `help:"Base URL the site will be served from"`
		Debounce time.Duration `help:"Quiet window between a change and the rebuild" default:"300ms"`
	} `cmd:"" help:"Build, then rebuild whenever the project changes"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "build":
		if err := runBuild(ctx, CLI.Build.Input, CLI.Build.Output, CLI.Build.URL, CLI.Build.SkipPrebuild); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(ctx, CLI.Watch.Input, CLI.Watch.Output, CLI.Watch.URL, CLI.Watch.Debounce); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	}
}

func runBuild(ctx context.Context, input, output, url string, skipPrebuild bool) error {
	cfg, err := config.Load(input, output, url)
	if err != nil {
		return err
	}

	if !skipPrebuild && len(cfg.Run.Prebuild) > 0 {
		if err := prebuild.Run(ctx, input, cfg.Run.Prebuild); err != nil {
			return err
		}
	}

	root, err := analyzer.Parse(ctx, input, cfg.AllIncludes())
	if err != nil {
		return err
	}

	report, err := builder.New(cfg).Build(ctx, root)
	if err != nil {
		return err
	}
	if joined := report.Err(); joined != nil {
		slog.Warn("Build finished with errors",
			"pages", report.Pages, "errors", len(report.Errs))
	}
	return nil
}

func runWatch(ctx context.Context, input, output, url string, debounce time.Duration) error {
	if err := runBuild(ctx, input, output, url, false); err != nil {
		// First build failures are not fatal in watch mode, the next
		// edit gets another chance.
		slog.Error("Initial build failed", "error", err)
	}

	w := watch.New(input, []string{output}, debounce, func(ctx context.Context) error {
		return runBuild(ctx, input, output, url, true)
	})
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
