// Command ypsite runs the YP Electrical landing page in a desktop window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ypelectrical/lumen"
	"github.com/ypelectrical/lumen/internal/config"
	"github.com/ypelectrical/lumen/internal/content"
	"github.com/ypelectrical/lumen/internal/launch"
	"github.com/ypelectrical/lumen/internal/logging"
	"github.com/ypelectrical/lumen/internal/page"
	"github.com/ypelectrical/lumen/internal/watch"
	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli holds the flag values and the state PersistentPreRunE sets up for
// every subcommand.
type cli struct {
	configPath  string
	logLevel    string
	debug       bool
	contentPath string
	watch       bool
	script      string
	showFPS     bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "ypsite",
		Short: "YP Electrical and Civil Works landing page",
		Long: `ypsite renders the YP Electrical landing page: a scrolling single page
with animated sections, a full-screen menu and click-through contact links.

Site copy comes from the embedded site.yaml unless --content points at a
file. With --watch the page is rebuilt whenever that file changes.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: c.runSite,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (YAML)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&c.debug, "debug", false, "enable scene debug checks and frame stats")

	root.Flags().StringVar(&c.contentPath, "content", "", "site content file (default: embedded)")
	root.Flags().BoolVarP(&c.watch, "watch", "w", false, "rebuild the page when the content file changes")
	root.Flags().StringVar(&c.script, "script", "", "test script to run against the page")
	root.Flags().BoolVar(&c.showFPS, "fps", false, "show the FPS widget")

	root.AddCommand(c.contentCmd(), c.configCmd(), versionCmd())
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, _, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.cfg, c.logger = cfg, logger
	return nil
}

// applyFlags copies explicitly set flags over the loaded config.
func (c *cli) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.Logging.Level = c.logLevel
	}
	if fs.Changed("debug") {
		cfg.Debug = c.debug
	}
	if fs.Changed("content") {
		cfg.Content.Path = c.contentPath
	}
	if fs.Changed("watch") {
		cfg.Content.Watch = c.watch
	}
	if fs.Changed("script") {
		cfg.Script = c.script
	}
	if fs.Changed("fps") {
		cfg.ShowFPS = c.showFPS
	}
}

func (c *cli) runSite(cmd *cobra.Command, _ []string) error {
	cfg := c.cfg
	site, err := content.Load(cfg.Content.Path)
	if err != nil {
		return err
	}

	scene := lumen.NewScene(lumen.Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)})
	scene.SetLogger(logging.Named(c.logger, "scene"))
	scene.SetDebugMode(cfg.Debug)
	scene.ScreenshotDir = cfg.ScreenshotDir

	pg, err := page.New(scene, site, launch.NewSystem(logging.Named(c.logger, "launch")), logging.Named(c.logger, "page"))
	if err != nil {
		return fmt.Errorf("failed to build page: %w", err)
	}
	defer pg.Close()

	if cfg.Content.Watch {
		w, err := watch.New(cfg.Content.Path, watch.DefaultDebounce, logging.Named(c.logger, "watch"),
			c.reloadContent(scene, pg, cfg.Content.Path))
		if err != nil {
			return err
		}
		if err := w.Start(cmd.Context()); err != nil {
			return err
		}
		defer w.Stop()
	}

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		runner, err := lumen.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
		c.logger.Info("test script attached", zap.String("path", cfg.Script))
	}

	c.logger.Info("starting",
		zap.String("version", version),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("content", cfg.Content.Path))

	return lumen.Run(scene, lumen.RunConfig{
		Title:              cfg.Window.Title,
		Width:              cfg.Window.Width,
		Height:             cfg.Window.Height,
		Resizable:          cfg.Window.Resizable,
		ShowFPS:            cfg.ShowFPS,
		ExitWhenScriptDone: cfg.Script != "" && cfg.ExitAfterScript,
	})
}

// reloadContent returns the watcher callback. It parses the file on the
// watcher goroutine and hands the rebuild to the update loop.
func (c *cli) reloadContent(scene *lumen.Scene, pg *page.Page, path string) func() {
	return func() {
		site, err := content.Load(path)
		if err != nil {
			c.logger.Warn("content reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		if !scene.Post(func() { pg.Rebuild(site) }) {
			c.logger.Warn("content reload dropped", zap.String("path", path))
			return
		}
		c.logger.Info("content reloaded", zap.String("path", path))
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ypsite version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ypsite %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
