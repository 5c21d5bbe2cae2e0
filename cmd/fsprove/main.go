package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/schaermu/fsprove/internal/config"
	"github.com/schaermu/fsprove/internal/model"
	"github.com/schaermu/fsprove/internal/prove"
	"github.com/schaermu/fsprove/internal/report"
)

var (
	// Set by goreleaser
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string

	// Classify flags
	outputFile    string
	reportFormat  string
	workers       int
	relationships []string

	// Enumerate flags
	enumRelationship string
	enumValue        string
	debug            bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fsprove",
	Short: "Prove algebraic rules for pairs of filesystem commands",
	Long: `fsprove models a filesystem around two observed paths, enumerates every
environment those paths can be in, and checks every pair of commands on them.

For each pair it reports whether the pair always breaks, whether it can be
replaced by a single command, or whether its commands can be reordered.`,
	SilenceUsage: true,
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify every command pair and print one rule per line",
	Long: `Classify enumerates all representative command pairs and tests each one
against every filesystem of its relationship.

Lines have the form "<pair> \t<rule>" where the rule is "== break", a single
replacement command, a reversed pair, or "(no rule)". "==" marks an exact
replacement, "=[" a replacement that extends the domain of the pair.`,
	Args: cobra.NoArgs,
	RunE: runClassify,
}

var enumerateCmd = &cobra.Command{
	Use:       "enumerate {contents|nodes|filesystems|commands|pairs}",
	Short:     "Print a canonical enumeration of model values",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"contents", "nodes", "filesystems", "commands", "pairs"},
	RunE:      runEnumerate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fsprove %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fsprove/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	// Classify command flags
	classifyCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a file instead of stdout")
	classifyCmd.Flags().StringVar(&reportFormat, "format", "text", "report format (text, yaml)")
	classifyCmd.Flags().IntVar(&workers, "workers", 1, "number of pairs classified concurrently")
	classifyCmd.Flags().StringSliceVar(&relationships, "relationship", nil, "only classify pairs with this relationship (repeatable)")

	// Enumerate command flags
	enumerateCmd.Flags().StringVar(&enumRelationship, "relationship", model.Separate.String(), "filesystem relationship to enumerate")
	enumerateCmd.Flags().StringVar(&enumValue, "value", "Value", "identity tag of enumerated contents")
	enumerateCmd.Flags().BoolVar(&debug, "debug", false, "render broken values with their reason")

	// Add commands
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(enumerateCmd)
	rootCmd.AddCommand(versionCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx, cancel := setupSignalHandler()
	defer cancel()

	logger := setupLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyClassifyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}

	if cfg.Report.Output == "" {
		return classify(ctx, logger, cfg, cmd.OutOrStdout())
	}

	f, err := os.Create(cfg.Report.Output)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := classify(ctx, logger, cfg, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	logger.Info("report written", "path", cfg.Report.Output)
	return nil
}

// classify runs the engine and writes every result to out
func classify(ctx context.Context, logger *slog.Logger, cfg *config.Config, out io.Writer) error {
	rels, err := cfg.PairRelationships()
	if err != nil {
		return err
	}

	w, err := report.NewWriter(out, cfg.Report.Format)
	if err != nil {
		return err
	}

	engine := prove.NewEngine(logger, prove.Options{
		Workers:       cfg.Classify.Workers,
		Relationships: rels,
	})

	if _, err := engine.Run(ctx, w.Write); err != nil {
		logger.Error("classification failed", "error", err)
		return err
	}

	return w.Close()
}

// applyClassifyFlags overrides config values with explicitly set flags
func applyClassifyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("output") {
		cfg.Report.Output = outputFile
	}
	if flags.Changed("format") {
		cfg.Report.Format = report.Format(reportFormat)
	}
	if flags.Changed("workers") {
		cfg.Classify.Workers = workers
	}
	if flags.Changed("relationship") {
		cfg.Classify.Relationships = relationships
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Render.Debug = debug
	}

	rel, err := model.ParseRelationship(enumRelationship)
	if err != nil {
		return err
	}

	lines, err := enumerate(args[0], rel, enumValue, cfg.Render.Debug)
	if err != nil {
		return err
	}

	logger.Debug("enumerated", "what", args[0], "count", len(lines))
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}
	return nil
}

// enumerate renders one line per value of the named enumeration
func enumerate(what string, rel model.Relationship, value string, debug bool) ([]string, error) {
	var lines []string
	switch what {
	case "contents":
		for c := range model.Contents(value) {
			lines = append(lines, report.Content(c))
		}
	case "nodes":
		for n := range model.Nodes(value) {
			lines = append(lines, report.Node(n, debug))
		}
	case "filesystems":
		if rel == model.Same {
			return nil, fmt.Errorf("%s is not a filesystem relationship", rel)
		}
		for f := range model.Filesystems(rel) {
			lines = append(lines, report.Filesystem(f, debug))
		}
	case "commands":
		for _, path := range []model.Path{model.P1, model.P2} {
			for c := range model.Commands(path, value) {
				lines = append(lines, report.Command(c))
			}
		}
	case "pairs":
		for p := range model.CommandPairs() {
			lines = append(lines, report.Pair(p))
		}
	default:
		return nil, fmt.Errorf("unknown enumeration %q", what)
	}
	return lines, nil
}

func setupLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Logs go to stderr, stdout carries the report
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func loadConfig(logger *slog.Logger) (*config.Config, error) {
	// Determine config file path
	configPath := cfgFile
	explicit := configPath != ""
	if !explicit {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("loading configuration", "path", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		// The default config file is optional
		if !explicit && errors.GetCode(err) == errors.CodeNotFound {
			logger.Debug("no config file, using defaults", "path", configPath)
			return config.Default(), nil
		}
		return nil, err
	}

	logger.Debug("configuration loaded",
		"format", cfg.Report.Format,
		"output", cfg.Report.Output,
		"workers", cfg.Classify.Workers,
		"relationships", cfg.Classify.Relationships)

	return cfg, nil
}

func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}
