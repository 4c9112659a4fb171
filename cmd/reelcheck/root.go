// Command reelcheck inspects reel scenarios without a terminal UI: it prints
// their schedule and plays them headless to confirm the timing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/config"
	"github.com/llehouerou/reelpreview/internal/logging"
)

// env is shared by every subcommand once the root pre-run has loaded it.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		e          = &env{}
	)

	root := &cobra.Command{
		Use:           "reelcheck",
		Short:         "Check reel scenarios: print schedules and play them headless",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if configPath != "" {
				e.cfg, err = config.LoadFile(configPath)
			} else {
				e.cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			e.log = logging.NewConsole(logLevel)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/reelpreview/config.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newScheduleCmd(e), newPlayCmd(e))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reelcheck:", err)
		os.Exit(1)
	}
}
