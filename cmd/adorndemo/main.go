// Adorndemo opens a window with a few hosts and their adorners: a tooltip
// that fades in on hover, a badge toggled by clicking its card, a toolbar
// pinned to a named part, and a stretched banner.
//
// Adorner settings can be loaded from a YAML file and reloaded live:
//
//	adorndemo --config adorners.yaml --watch
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/adorn"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	watch      bool
	verbose    bool
	scriptPath string
	width      int
	height     int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "adorndemo",
	Short: "Interactive demo of hover-driven overlay adorners",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDemo,
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check an adorner config file and print it with defaults filled in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := adorn.LoadConfigFile(args[0])
		if err != nil {
			errs := multierr.Errors(err)
			if len(errs) < 2 {
				return err
			}
			for _, e := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), e)
			}
			return fmt.Errorf("%s: %d invalid entries", args[0], len(errs))
		}
		out, err := f.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with per-adorner settings")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload --config when it changes")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "JSON test script to run, exiting when it finishes")
	rootCmd.Flags().IntVar(&width, "width", 800, "Window width")
	rootCmd.Flags().IntVar(&height, "height", 600, "Window height")
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	if watch && configPath == "" {
		return errors.New("--watch requires --config")
	}

	scene := adorn.NewScene()
	scene.SetLogger(logger)
	scene.SetDebugMode(verbose)
	scene.ClearColor = adorn.Color{R: 0.12, G: 0.12, B: 0.15, A: 1}

	d, err := buildDemo(scene)
	if err != nil {
		return err
	}

	if configPath != "" {
		f, err := adorn.LoadConfigFile(configPath)
		if err != nil {
			return err
		}
		if err := scene.ApplyConfigFile(f); err != nil {
			return err
		}
	}
	if watch {
		w, err := adorn.WatchConfigFile(configPath, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		d.watcher = w
	}
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := adorn.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
		d.runner = runner
	}

	scene.SetUpdateFunc(d.update)

	err = adorn.Run(scene, adorn.RunConfig{
		Title:     "Adorn Demo",
		Width:     width,
		Height:    height,
		ShowFPS:   verbose,
		Resizable: true,
	})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
