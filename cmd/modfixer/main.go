package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bottle-mods/modfixer/internal/config"
	"github.com/bottle-mods/modfixer/internal/console"
	"github.com/bottle-mods/modfixer/internal/planner"
	"github.com/bottle-mods/modfixer/internal/tool"
	vercmp "github.com/bottle-mods/modfixer/internal/version"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to YAML settings file")
		mode        = flag.String("mode", "", "version comparison mode: numeric or raw")
		yes         = flag.Bool("yes", false, "update every mismatched mod without prompting")
		quiet       = flag.Bool("quiet", false, "log errors only")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("modfixer v%s\n", version)
		return 0
	}
	if flag.NArg() > 1 {
		usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "modfixer:", err)
		return 1
	}
	if flag.NArg() == 1 {
		cfg.ModsDir = flag.Arg(0)
	}
	if *mode != "" {
		cfg.ComparisonMode = *mode
	}

	logger := newLogger(cfg, *quiet)
	slog.SetDefault(logger)

	cmpMode, err := vercmp.ParseMode(cfg.ComparisonMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "modfixer:", err)
		return 2
	}

	eng := planner.NewService(vercmp.NewComparator(cmpMode), logger)
	host := console.LocalHost{Dir: cfg.ModsDir}

	var ui tool.Presenter = console.NewPresenter(os.Stdin, os.Stdout)
	if *yes {
		ui = console.NewAutoApprove(os.Stdout)
	}

	if err := tool.Run(host, ui, eng, logger); err != nil {
		var dirErr *planner.DirectoryAccessError
		if errors.As(err, &dirErr) {
			logger.Error("mods folder not accessible", "root", dirErr.Root, "error", dirErr.Err)
		}
		return 1
	}
	return 0
}

func newLogger(cfg *config.Settings, quiet bool) *slog.Logger {
	level := cfg.LogLevel()
	if quiet {
		level = slog.LevelError
	}
	var w io.Writer = os.Stderr
	if cfg.Log.File != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		})
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: modfixer [flags] [mods-folder]

Scans each mod folder's meta.ini and, where the recorded version differs from
newestVersion, offers to rewrite version to match. With no mods-folder
argument the directory comes from the config file or an interactive prompt.

Flags:
`)
	flag.PrintDefaults()
}
