package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"geobox/internal/config"
	"geobox/internal/logging"
	"geobox/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

// setup loads configuration and installs the logger. console is false for
// the viewer so log output stays off its screen.
func (o *options) setup(console bool) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	o.cfg = cfg
	logging.Init(cfg.Log, console)
	return nil
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "geobox [path]",
		Short:        "Compute and view bounding boxes of geometry files",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.setup(false); err != nil {
				return err
			}
			var m tea.Model
			if len(args) == 1 {
				m = tui.NewWithPath(o.cfg.View, args[0])
			} else {
				m = tui.New(o.cfg.View)
			}
			log.Info().Strs("args", args).Msg("viewer start")
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.AddCommand(newBoundsCmd(o))
	return root
}
