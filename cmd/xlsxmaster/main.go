// Package main provides the CLI entry point for xlsxmaster.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlsxmaster",
		Short: "Add native charts to xlsx files",
		Long: `xlsxmaster injects native Excel charts described in a YAML file
into an existing workbook, and reports the charts a workbook contains.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newInjectCmd(), newInspectCmd())
	return rootCmd
}

func newInjectCmd() *cobra.Command {
	var configPath, outputPath string

	cmd := &cobra.Command{
		Use:   "inject [input.xlsx]",
		Short: "Add the charts of a config file to a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if outputPath == "" {
				outputPath = defaultOutputPath(inputPath)
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			logger := settings.NewLogger(cmd.ErrOrStderr())

			charts, err := config.Load(configPath)
			if err != nil {
				return err
			}
			builders, err := charts.Builders()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			opts := xlsxmaster.DefaultOptions()
			opts.Logger = logger
			opts.EditAs = xlsxmaster.EditAs(settings.EditAs)

			out, err := xlsxmaster.ApplyChartsWithOptions(data, opts, builders...)
			if err != nil {
				return fmt.Errorf("injection failed: %w", err)
			}
			if err := xlsxmaster.WriteFile(outputPath, out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			logger.Info("charts written",
				slog.String("output", outputPath),
				slog.Int("charts", len(builders)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d chart(s) to %s\n", len(builders), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Chart definition file (YAML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <input>.charts.xlsx)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var outputPath string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Print the charts of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}

			wb, err := xlsxmaster.InspectFile(inputPath)
			if err != nil {
				return fmt.Errorf("inspection failed: %w", err)
			}

			if outputPath == "" {
				return writeJSON(cmd.OutOrStdout(), wb, pretty)
			}
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			if err := writeJSON(f, wb, pretty); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return nil
}

func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".charts" + ext
}
