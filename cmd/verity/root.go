package main

import (
	"io"
	"log/slog"

	"github.com/cloudcopper/verity"
	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/infra/config"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/lib/types"
	"github.com/cloudcopper/verity/ports"
	"github.com/spf13/cobra"
)

type options struct {
	flags      config.Config
	unreadable string
	configFile string
	noColor    bool
	verbose    bool
	since      string
	limit      int
}

// newRootCmd creates verity command tree writing reports to out.
// The root command itself runs verification.
func newRootCmd(out io.Writer) *cobra.Command {
	o := &options{}
	def := config.Default()

	root := &cobra.Command{
		Use:           "verity",
		Short:         "Check directory tree against baseline of digests",
		Long:          "Verity detects modified, new, deleted and unreadable files of directory tree comparing file digests with the previously recorded baseline.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, o, out)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.flags.Target, "target", def.Target, "directory to check")
	flags.StringVar(&o.flags.Baseline, "baseline", def.Baseline, "baseline file (json, yaml or sha256sum format)")
	flags.StringVar(&o.flags.Algo, "algo", def.Algo, "digest algorithm (sha256|sha512|blake3)")
	flags.StringArrayVar(&o.flags.Exclude, "exclude", nil, "exclude paths matching glob (repeatable)")
	flags.IntVar(&o.flags.Workers, "workers", def.Workers, "count of files digested in parallel")
	flags.StringVar(&o.unreadable, "unreadable", string(def.Unreadable), "unreadable baseline files are reported as: report|modified")
	flags.StringVar(&o.flags.History, "history", "", "history database file (in memory if empty)")
	flags.BoolVar(&o.flags.Strict, "strict", false, "exit with error code when changes detected")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colorized output")
	flags.StringVar(&o.configFile, "config", config.ConfigFileName, "config file name")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "verbose logging")

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check directory tree against baseline (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, o, out)
		},
	}
	root.AddCommand(verify)

	history := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, o, out)
		},
	}
	history.Flags().StringVar(&o.since, "since", "", "only runs started within duration, like 1w or 36h")
	history.Flags().IntVar(&o.limit, "limit", 20, "max runs to list (0 = all)")
	root.AddCommand(history)

	return root
}

func runVerify(cmd *cobra.Command, o *options, out io.Writer) error {
	log := logger(o)
	cfg, err := loadConfig(cmd, log, o)
	if err != nil {
		return err
	}
	return verity.App(cmd.Context(), log, cfg, out, !o.noColor)
}

func runHistory(cmd *cobra.Command, o *options, out io.Writer) error {
	log := logger(o)
	cfg, err := loadConfig(cmd, log, o)
	if err != nil {
		return err
	}
	since := types.Duration(0)
	if o.since != "" {
		since, err = types.ParseDuration(o.since)
		if err != nil {
			return lib.NewErrorCode(err, errors.RetQueryHistoryError)
		}
	}
	return verity.History(log, cfg, since, o.limit, out, !o.noColor)
}

func logger(o *options) ports.Logger {
	if o.verbose {
		setDefaultLogger(slog.LevelDebug)
	}
	return slog.Default()
}

// The loadConfig reads config file and overrides it
// by flags given in command line
func loadConfig(cmd *cobra.Command, log ports.Logger, o *options) (*config.Config, error) {
	config.ConfigFileName = o.configFile
	cfg, err := verity.LoadConfig(log, fs)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target = o.flags.Target
	}
	if flags.Changed("baseline") {
		cfg.Baseline = o.flags.Baseline
	}
	if flags.Changed("algo") {
		cfg.Algo = o.flags.Algo
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, o.flags.Exclude...)
	}
	if flags.Changed("workers") {
		cfg.Workers = o.flags.Workers
	}
	if flags.Changed("unreadable") {
		cfg.Unreadable = vo.ReadErrorPolicy(o.unreadable)
	}
	if flags.Changed("history") {
		cfg.History = o.flags.History
	}
	if flags.Changed("strict") {
		cfg.Strict = o.flags.Strict
	}

	if err := config.Validate(log, cfg); err != nil {
		log.Error("invalid config", slog.Any("err", err))
		return nil, lib.NewErrorCode(err, errors.RetLoadConfigError)
	}
	return cfg, nil
}
