package main

import (
	"fmt"
	"os"

	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/filepanel/filepanel/pkg/config"
	"github.com/filepanel/filepanel/pkg/explorer"
	"github.com/filepanel/filepanel/pkg/explorer/fpstate"
	"github.com/filepanel/filepanel/pkg/explorer/pathres"
	"github.com/filepanel/filepanel/pkg/filepanel"
	"github.com/filepanel/filepanel/pkg/files/osfile"
	"github.com/filepanel/filepanel/pkg/fsutils"
	"github.com/filepanel/filepanel/pkg/profiling"
	"github.com/filepanel/filepanel/pkg/watch"
)

var osExit = os.Exit
var osGetwd = os.Getwd

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile    string
		startDir   string
		showHidden bool
		cpuProfile string
		memProfile string
	)

	rootCmd := &cobra.Command{
		Use:   "filepanel",
		Short: "A terminal file-manager panel",
		Long: `Filepanel is a terminal file-manager panel: browse directories
with back/forward history, filter listings with glob patterns, and keep
view and column settings across restarts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				stopCPUProfiling := profiling.DoCPUProfiling(cpuProfile)
				defer stopCPUProfiling()
			}
			if memProfile != "" {
				writeMemProfile := profiling.DoMemProfiling(memProfile)
				defer writeMemProfile()
			}

			var cfg *config.Config
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadFile(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if startDir != "" {
				cfg.Directories.Start = startDir
			}
			if cmd.Flags().Changed("show-hidden") {
				cfg.Listing.ShowHidden = showHidden
			}
			return runPanel(cfg)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/filepanel/config.yaml)")
	rootCmd.Flags().StringVarP(&startDir, "dir", "d", "", "directory to open")
	rootCmd.Flags().BoolVar(&showHidden, "show-hidden", false, "list hidden files")
	rootCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	rootCmd.Flags().StringVar(&memProfile, "memprofile", "", "write memory profile to `file`")
	return rootCmd
}

func runPanel(cfg *config.Config) error {
	// The launch directory is captured once; the launch shortcut keeps
	// pointing here even if the process working directory changes.
	launchDir, err := osGetwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}
	if cfg.Directories.Start != "" {
		start := fsutils.ExpandHome(cfg.Directories.Start)
		exists, err := fsutils.DirExists(start)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("start directory does not exist: %s", start)
		}
		launchDir = start
	}

	store := osfile.NewStore()
	persist := fpstate.NewFileStore(cfg.State.File)

	opts := []explorer.Option{
		explorer.WithHistorySize(cfg.History.Size),
		explorer.WithShowHidden(cfg.Listing.ShowHidden),
	}
	if cfg.Listing.CaseInsensitiveSort {
		opts = append(opts, explorer.WithCaseInsensitiveSort())
	}
	ctrl, err := explorer.New(store, persist, pathres.OSEnv{}, launchDir, opts...)
	if err != nil {
		return err
	}

	app := tview.NewApplication()
	app.EnableMouse(true)

	watcher, err := watch.New()
	if err != nil {
		logrus.WithError(err).Warn("directory watching unavailable")
		watcher = nil
	}

	var panel *filepanel.Panel
	panelOptions := []filepanel.Option{}
	if watcher != nil {
		panelOptions = append(panelOptions, filepanel.OnDirChanged(func(dir string) {
			if err := watcher.SetDirectory(dir); err != nil {
				logrus.WithError(err).Debug("failed to watch directory")
			}
		}))
	}
	panel = filepanel.New(app, ctrl, panelOptions...)

	if watcher != nil {
		if err := watcher.SetDirectory(ctrl.CurrentDirectory()); err != nil {
			logrus.WithError(err).Debug("failed to watch directory")
		}
		watcher.Start()
		defer watcher.Stop()
		go func() {
			for range watcher.Invalidated() {
				app.QueueUpdateDraw(func() {
					if err := ctrl.Refresh(); err != nil {
						return
					}
					panel.Render()
				})
			}
		}()
	}

	app.SetRoot(panel, true)
	return app.Run()
}
