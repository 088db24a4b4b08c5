package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/app"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/config"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/profile"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/watch"
)

func main() {
	// Load .env if present; environment takes over from there.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "amf-reshape",
		Short: "Reshape AmeriFlux BASE BIF exports into per-group CSV tables",
		Long: `Reshape an AmeriFlux BASE BIF export (long-form key/value metadata rows)
into one wide CSV file per VARIABLE_GROUP, keyed by GROUP_ID with aligned
date columns.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newProcessCmd(),
		newProfileCmd(),
		newWatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolvePipeline builds a pipeline from config, CLI args and flags, with
// flags winning over environment.
func resolvePipeline(args []string, outDir, sheet string) (*app.Pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	input := cfg.Input.FilePath
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return nil, fmt.Errorf("no input file: pass it as an argument or set AMF_INPUT_FILE")
	}
	if outDir == "" {
		outDir = cfg.Output.Directory
	}
	if sheet == "" {
		sheet = cfg.Input.SheetName
	}
	return app.NewPipeline(input, sheet, outDir), nil
}

func newProcessCmd() *cobra.Command {
	var outDir string
	var sheet string

	cmd := &cobra.Command{
		Use:   "process [input-file]",
		Short: "Reshape an export and write one CSV per variable group",
		Long: `Read the BIF export, resolve a date key for every group, pivot each
VARIABLE_GROUP into a wide table and write it as <group>.csv.

Example: amf-reshape process AMF_US-Ne1_BIF_20230922.xlsx --out ./tables`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePipeline(args, outDir, sheet)
			if err != nil {
				return err
			}
			result, err := p.Run()
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %d files for %d rows (sites: %v)\n",
				len(result.Files), result.RowCount, result.SiteIDs)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: AMF_OUTPUT_DIR or current directory)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet name (default: AMF-BIF)")

	return cmd
}

func newProfileCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "profile [input-file]",
		Short: "Print per-column summaries without writing any files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePipeline(args, ".", sheet)
			if err != nil {
				return err
			}
			tables, err := p.Tables()
			if err != nil {
				return err
			}
			for _, table := range tables {
				profile.Render(cmd.OutOrStdout(), profile.Profile(table))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet name (default: AMF-BIF)")

	return cmd
}

func newWatchCmd() *cobra.Command {
	var outDir string
	var sheet string
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch [input-file]",
		Short: "Process once, then reprocess whenever the export changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePipeline(args, outDir, sheet)
			if err != nil {
				return err
			}
			if _, err := p.Run(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(p.InputPath, time.Duration(debounceMs)*time.Millisecond, func() error {
				_, err := p.Run()
				return err
			})
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: AMF_OUTPUT_DIR or current directory)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet name (default: AMF-BIF)")
	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Change debounce in milliseconds")

	return cmd
}
