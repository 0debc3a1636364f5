// Package main provides the CLI entry point for pptchart.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ukaji3/pptchart-go/pkg/config"
	"github.com/ukaji3/pptchart-go/pkg/pptchart"
	"github.com/ukaji3/pptchart-go/pkg/pptchart/output"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg    *Config
	logger arbor.ILogger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pptchart",
		Short: "Extract chart data from PowerPoint decks",
		Long: `pptchart recovers the data behind the charts of a .pptx deck from its
embedded workbooks and writes a Markdown report and per-slide JSON payloads.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("PPTCHART_CONFIG"), "Path to a YAML or TOML config file (env PPTCHART_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(a.extractCmd(), a.patchCmd(), a.reorderCmd(), a.watchCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = NewDefaultConfig()
	if err := config.LoadOptional(a.configPath, a.cfg); err != nil {
		return err
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.logger = arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString(a.cfg.LogLevel)
	return nil
}

func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [deck.pptx] [report.md]",
		Short: "Write the chart report and per-slide payloads of a deck",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec := a.extractConfig(cmd, args)
			if err := ec.Require(); err != nil {
				return err
			}
			return runExtract(ec, a.logger)
		},
	}
	addExtractFlags(cmd)
	return cmd
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().String("json-dir", "", "Directory for per-slide JSON payloads")
	cmd.Flags().String("html", "", "Also render the report as HTML to this path")
	cmd.Flags().String("heading", "", "Report heading (default \""+output.DefaultHeading+"\")")
	cmd.Flags().Int("workers", 0, "Charts extracted concurrently (0: one per CPU)")
}

// extractConfig merges positional arguments and set flags over the
// configured extract section.
func (a *app) extractConfig(cmd *cobra.Command, args []string) ExtractConfig {
	ec := a.cfg.Extract
	if len(args) > 0 {
		ec.Deck = args[0]
	}
	if len(args) > 1 {
		ec.Report = args[1]
	}
	stringFlag(cmd, "json-dir", &ec.JSONDir)
	stringFlag(cmd, "html", &ec.HTML)
	stringFlag(cmd, "heading", &ec.Heading)
	intFlag(cmd, "workers", &ec.Workers)
	return ec
}

func runExtract(ec ExtractConfig, logger arbor.ILogger) error {
	if err := ec.Validate(); err != nil {
		return err
	}

	deck, err := pptchart.Extract(ec.Deck, pptchart.Options{Workers: ec.Workers, Logger: logger})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	report := output.BuildMarkdown(deck, ec.Heading)
	if err := writeFile(ec.Report, []byte(report)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info().Str("report", ec.Report).Int("charts", len(deck.Charts)).Msg("Report written")

	if ec.HTML != "" {
		html, err := output.RenderHTML([]byte(report))
		if err != nil {
			return err
		}
		if err := writeFile(ec.HTML, html); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		logger.Info().Str("html", ec.HTML).Msg("HTML report written")
	}

	if ec.JSONDir != "" {
		paths, err := output.WriteSlideFiles(output.BuildPayloads(deck), ec.JSONDir)
		if err != nil {
			return fmt.Errorf("failed to write slide files: %w", err)
		}
		logger.Info().Str("dir", ec.JSONDir).Int("files", len(paths)).Msg("Slide payloads written")
	}

	return nil
}

func (a *app) patchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Refresh one chart inside an existing slide payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc := a.cfg.Patch
			stringFlag(cmd, "docs-dir", &pc.DocsDir)
			stringFlag(cmd, "deck", &pc.Deck)
			stringFlag(cmd, "payload", &pc.Payload)
			stringFlag(cmd, "chart", &pc.Chart)
			boolFlag(cmd, "combo", &pc.Combo)
			if err := pc.Require(); err != nil {
				return err
			}

			res, err := pptchart.Patch(pptchart.PatchOptions{
				Deck:    pc.Deck,
				DocsDir: pc.DocsDir,
				Payload: pc.Payload,
				Chart:   pc.Chart,
				Combo:   pc.Combo,
				Logger:  a.logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s from %s\n", res.Chart, res.Payload, filepath.Base(res.Deck))
			return nil
		},
	}
	cmd.Flags().String("docs-dir", "", "Directory searched for the deck when --deck is not set")
	cmd.Flags().String("deck", "", "Deck to read")
	cmd.Flags().String("payload", "", "Slide payload file to update")
	cmd.Flags().String("chart", "", "Chart part path, e.g. ppt/charts/chart6.xml")
	cmd.Flags().Bool("combo", true, "Read every chart family of the plot area")
	return cmd
}

func (a *app) reorderCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "reorder files...",
		Short: "Put date categories of slide payloads in chronological order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := pptchart.Reorder(args, dryRun, a.logger)
			for _, res := range results {
				if len(res.Charts) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: already in chronological order or unsupported labels\n", res.Path)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: reordered charts %v\n", res.Path, res.Charts)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report which charts would be reordered without modifying files")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [deck.pptx] [report.md]",
		Short: "Re-run extract whenever the deck changes",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec := a.extractConfig(cmd, args)
			if err := ec.Require(); err != nil {
				return err
			}
			wc := a.cfg.Watch
			stringFlag(cmd, "debounce", &wc.Debounce)
			if err := wc.Validate(); err != nil {
				return err
			}

			if err := runExtract(ec, a.logger); err != nil {
				a.logger.Warn().Err(err).Msg("Initial extraction failed")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return pptchart.Watch(ctx, ec.Deck, wc.DebounceDuration(), a.logger, func() error {
				return runExtract(ec, a.logger)
			})
		},
	}
	addExtractFlags(cmd)
	cmd.Flags().String("debounce", "", "Quiet period before re-extracting, e.g. 500ms")
	return cmd
}

func stringFlag(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}

func intFlag(cmd *cobra.Command, name string, dst *int) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetInt(name)
	}
}

func boolFlag(cmd *cobra.Command, name string, dst *bool) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetBool(name)
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
