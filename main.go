package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runProgram is swapped out in tests to avoid taking over the terminal.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "tlpt",
		Short:         "Terminal console for a Teleport cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return trace.Wrap(err)
			}
			closer, err := initLogging(cfg.Log)
			if err != nil {
				return trace.Wrap(err)
			}
			defer closer.Close()

			backend, err := newBackend(cfg)
			if err != nil {
				return trace.Wrap(err)
			}
			log.WithFields(log.Fields{
				trace.Component: "main",
				"proxy":         cfg.Proxy,
				"fixture":       cfg.Fixture,
				"poll_interval": cfg.PollInterval,
			}).Info("Starting console.")

			if err := runProgram(initialModel(cfg, backend, clockwork.NewRealClock())); err != nil {
				return trace.Wrap(err, "running console")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "path to config file (default $HOME/.config/tlpt/config.yaml)")
	flags.String("proxy", "", "proxy web address, e.g. proxy.example.com:3080")
	flags.String("cluster", "", "cluster name (defaults to the proxy host)")
	flags.String("token", "", "bearer token for the web API")
	flags.String("fixture", "", "serve cluster data from a YAML file instead of the proxy")
	flags.Duration("poll-interval", defaultPollInterval, "how often to refresh cluster data")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

// --- MAIN ---
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", trace.UserMessage(err))
		os.Exit(1)
	}
}
