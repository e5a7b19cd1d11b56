// Command taskwake-stress runs the taskwake bridge under load: a run loop woken
// by fan-out workers for a number of rounds, then torn down while late
// notifiers keep firing.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/llxisdsh/taskwake/internal/stress"
)

var rootCmd = &cobra.Command{
	Use:          "taskwake-stress",
	Short:        "Stress the taskwake notify bridge",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().Int("rounds", 1000, "run loop entries")
	rootCmd.Flags().Int("workers", 32, "notifying workers per round")
	rootCmd.Flags().Int("late-notifiers", 8, "notifiers racing the teardown")
	rootCmd.Flags().String("log-level", "info", "log level (trace|debug|info|warning|err|disabled)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, level, err := configFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	cfg.Logger = stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(cmd.ErrOrStderr())),
		stumpy.L.WithLevel(level),
	).Logger()

	report, err := stress.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rounds:        %d\n", report.Rounds)
	fmt.Fprintf(out, "wakes:         %d\n", report.Wakes)
	fmt.Fprintf(out, "notifications: %d\n", report.Notifications)
	fmt.Fprintf(out, "teardown:      %s\n", report.Teardown)
	return nil
}

func configFromFlags(flags *pflag.FlagSet) (stress.Config, logiface.Level, error) {
	var cfg stress.Config
	rounds, err := flags.GetInt("rounds")
	if err != nil {
		return cfg, 0, err
	}
	workers, err := flags.GetInt("workers")
	if err != nil {
		return cfg, 0, err
	}
	late, err := flags.GetInt("late-notifiers")
	if err != nil {
		return cfg, 0, err
	}
	levelName, err := flags.GetString("log-level")
	if err != nil {
		return cfg, 0, err
	}
	level, err := parseLevel(levelName)
	if err != nil {
		return cfg, 0, err
	}

	cfg.Rounds = rounds
	cfg.Workers = workers
	cfg.LateNotifiers = late
	return cfg, level, nil
}

func parseLevel(s string) (logiface.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return logiface.LevelTrace, nil
	case "debug":
		return logiface.LevelDebug, nil
	case "info":
		return logiface.LevelInformational, nil
	case "warning", "warn":
		return logiface.LevelWarning, nil
	case "err", "error":
		return logiface.LevelError, nil
	case "disabled", "off":
		return logiface.LevelDisabled, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
