// Command ivagenda shows the upcoming days of one or more ICS calendars on
// a PocketBook reader. Off the device it runs in the terminal simulator.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"inkview/internal/config"
	appLog "inkview/internal/log"
	"inkview/pkg/inkview"
)

const version = "0.1.0"

var (
	configPath string
	dumpPath   string
	logLevel   string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:           "ivagenda",
		Short:         "Calendar agenda for PocketBook e-readers",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				appLog.SetLevel(appLog.Level(logLevel))
			}
		},
		RunE: run,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "ivagenda.yaml", "Path to agenda config (.yaml or .toml)")
	rootCmd.Flags().StringVar(&dumpPath, "dump", "", "Write the first screen to this PNG file and exit")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAgenda(configPath)
	if err != nil {
		return err
	}
	appLog.Info("ivagenda starting",
		"version", version,
		"timezone", cfg.Timezone,
		"horizon_days", cfg.HorizonDays,
		"sources", len(cfg.Sources),
	)
	if err := inkview.Main(newApp(cfg, dumpPath)); err != nil {
		return err
	}
	appLog.Info("ivagenda exiting")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		appLog.Error("ivagenda failed", err)
		os.Exit(1)
	}
}
