package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/go-scripts/krankenhaus/internal/browser"
	"github.com/go-scripts/krankenhaus/internal/config"
	"github.com/go-scripts/krankenhaus/internal/crawler"
	"github.com/go-scripts/krankenhaus/pkg/common"
)

// CLIFlags are all optional; without any the full directory is scraped
type CLIFlags struct {
	ConfigFile   string         `help:"Path to a YAML configuration file" name:"config" type:"path" env:"KRANKENHAUS_CONFIG"`
	BaseURL      string         `help:"Base URL of the hospital directory" env:"KRANKENHAUS_BASE_URL"`
	Regions      []string       `help:"Regions to scrape (default: all 16 federal states)" short:"r" env:"KRANKENHAUS_REGIONS"`
	OutputFile   string         `help:"Path of the CSV output" short:"o" env:"KRANKENHAUS_OUTPUT"`
	DBPath       string         `help:"Also write the table to this SQLite database" name:"db" env:"KRANKENHAUS_DB"`
	ListingDelay *time.Duration `help:"Wait after loading a region listing" env:"KRANKENHAUS_LISTING_DELAY"`
	FieldTimeout *time.Duration `help:"Maximum wait for each detail field" env:"KRANKENHAUS_FIELD_TIMEOUT"`
	WindowWidth  int            `help:"Browser window width" env:"KRANKENHAUS_WINDOW_WIDTH"`
	WindowHeight int            `help:"Browser window height" env:"KRANKENHAUS_WINDOW_HEIGHT"`
	Headful      bool           `help:"Show the browser window" env:"KRANKENHAUS_HEADFUL"`
	SnapshotDir  string         `help:"Replay saved HTML pages from this directory instead of starting a browser" type:"path" env:"KRANKENHAUS_SNAPSHOT_DIR"`
	LogLevel     string         `help:"Log level" default:"info" enum:"debug,info,warn,error" env:"KRANKENHAUS_LOG_LEVEL"`
}

func (f CLIFlags) overrides() config.Overrides {
	return config.Overrides{
		BaseURL:      f.BaseURL,
		Regions:      f.Regions,
		OutputFile:   f.OutputFile,
		DBPath:       f.DBPath,
		ListingDelay: f.ListingDelay,
		FieldTimeout: f.FieldTimeout,
		WindowWidth:  f.WindowWidth,
		WindowHeight: f.WindowHeight,
		Headful:      f.Headful,
		SnapshotDir:  f.SnapshotDir,
	}
}

// openPage starts the browser, or opens the snapshot directory when configured
func openPage(cfg common.Configuration) (browser.Page, func(), error) {
	if cfg.SnapshotDir != "" {
		log.Info("Replaying snapshots", "dir", cfg.SnapshotDir)
		return browser.NewSnapshotPage(os.DirFS(cfg.SnapshotDir)), nil, nil
	}

	session, err := browser.NewSession(browser.SessionConfig{
		Headless:     cfg.Headless,
		WindowWidth:  cfg.WindowWidth,
		WindowHeight: cfg.WindowHeight,
	})
	if err != nil {
		return nil, nil, err
	}
	return session, session.Close, nil
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	var flags CLIFlags
	ctx := kong.Parse(&flags,
		kong.Name("krankenhaus"),
		kong.Description("Scrape contact details from the German hospital directory into a CSV file."),
	)
	if ctx.Error != nil {
		fmt.Printf("Error parsing flags: %v\n", ctx.Error)
		os.Exit(1)
	}

	level, err := log.ParseLevel(flags.LogLevel)
	if err != nil {
		log.Fatal("Invalid log level", "level", flags.LogLevel, "error", err)
	}
	log.SetLevel(level)

	// Load configuration from file, then override with command line flags
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		log.Fatal("Error loading configuration", "error", err)
	}
	flags.overrides().Apply(&cfg)
	if err := config.Validate(cfg); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	page, release, err := openPage(cfg)
	if err != nil {
		log.Fatal("Error starting browser", "error", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := crawler.New(cfg, page, release, os.Stdout)
	if _, err := c.Run(runCtx); err != nil {
		log.Error("Scrape failed", "error", err)
		stop()
		os.Exit(1)
	}
}
