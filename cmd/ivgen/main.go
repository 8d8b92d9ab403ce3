// Command ivgen turns the integer constants of the inkview C header into
// typed Go enumerations. It is normally run through go:generate from the
// inkview package directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"inkview/internal/config"
	"inkview/internal/enumgen"
	"inkview/internal/generate"
	appLog "inkview/internal/log"
	"inkview/internal/watch"
)

const version = "0.1.0"

var (
	configPath string
	logLevel   string
	force      bool
	debounce   time.Duration
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:           "ivgen",
		Short:         "Generate Go enumerations from inkview header constants",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				appLog.SetLevel(appLog.Level(logLevel))
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ivgen.yaml", "Path to generator config (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan headers and write the generated Go file",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Print every discovered constant and its classification",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default generator config",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever a header or the config changes",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")

	rootCmd.AddCommand(generateCmd, scanCmd, initCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		appLog.Error("ivgen failed", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	rep, err := generate.Run(cfg)
	if err != nil {
		return err
	}
	printReport(cmd, rep)
	return nil
}

func printReport(cmd *cobra.Command, rep *generate.Report) {
	out := cmd.OutOrStdout()
	state := "unchanged"
	if rep.Changed {
		state = "written"
	}
	fmt.Fprintf(out, "%s (%s)\n", rep.Output, state)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, g := range rep.Groups {
		fmt.Fprintf(tw, "  %s\t%s\t%d\n", g.Name, g.Kind, g.Variants)
	}
	fmt.Fprintf(tw, "  plain\ti32\t%d\n", rep.Plain)
	fmt.Fprintf(tw, "  untyped\t-\t%d\n", rep.Untyped)
	fmt.Fprintf(tw, "  filtered\t-\t%d\n", rep.Filtered)
	tw.Flush()
	for _, c := range rep.Collisions {
		fmt.Fprintf(out, "  collision: %s\n", c)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	rules, err := cfg.EnumRules()
	if err != nil {
		return err
	}
	c, err := enumgen.NewClassifier(rules)
	if err != nil {
		return err
	}
	keep, err := cfg.PassThroughFilter()
	if err != nil {
		return err
	}
	consts, err := generate.Scan(cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVALUE\tCLASS\tGROUP\tVARIANT")
	for _, rc := range consts {
		cl, err := c.Add(rc)
		if err != nil {
			return err
		}
		class := cl.Class.String()
		if cl.Class != enumgen.ClassEnum && !keep(rc.Name) {
			class = "filtered"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", rc.Name, rc.Value, class, cl.Group, cl.Variant)
	}
	return tw.Flush()
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := config.Save(configPath, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote", configPath)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if rep, err := generate.Run(cfg); err != nil {
			appLog.Error("generation failed", err)
		} else {
			printReport(cmd, rep)
		}

		w, err := watch.New(append(cfg.HeaderPaths(), configPath), debounce)
		if err != nil {
			return err
		}
		appLog.Info("watching", "headers", len(cfg.Headers), "config", configPath)
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		batch, ok := <-w.Changes()
		w.Close()
		if !ok {
			err := <-done
			if errors.Is(err, context.Canceled) {
				appLog.Info("signal received, stopping")
				return nil
			}
			return err
		}
		<-done
		appLog.Info("change detected", "paths", batch)
	}
}
