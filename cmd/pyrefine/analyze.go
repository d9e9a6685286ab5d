package main

import (
	"context"
	"fmt"
	"os"

	"github.com/coderefinery/pyrefine/app"
	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/config"
	"github.com/coderefinery/pyrefine/service"
	"github.com/spf13/cobra"
)

var (
	analyzeThreshold       int
	analyzeFormat          string
	analyzeJSON            bool
	analyzeShowDetails     bool
	analyzeApplyFormatting bool
	analyzeExports         []string
	analyzeOutputDir       string
	analyzeConfigPath      string
	analyzeNoProgress      bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Analyze Python files",
		Long: `Analyze Python files for style issues, formatting deviations,
cyclomatic complexity, and likely bugs.

Examples:
  pyrefine analyze src/
  pyrefine analyze --threshold 5 src/
  pyrefine analyze --format json src/
  pyrefine analyze --export markdown,json --output-dir reports/ src/
  pyrefine analyze --apply-formatting src/`,
		RunE: runAnalyze,
	}

	cmd.Flags().IntVarP(&analyzeThreshold, "threshold", "t", 0,
		"Complexity threshold (default 10)")
	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "",
		"Output format: text, json, yaml, markdown")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVarP(&analyzeShowDetails, "show-details", "d", false,
		"Show the per-file issue breakdown")
	cmd.Flags().BoolVar(&analyzeApplyFormatting, "apply-formatting", false,
		"Rewrite files through the formatter when black is available")
	cmd.Flags().StringSliceVarP(&analyzeExports, "export", "e", nil,
		"Export formats (comma-separated): markdown,json")
	cmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "",
		"Directory for exported reports")
	cmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&analyzeNoProgress, "no-progress", false,
		"Disable the progress bar")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	cfg, err := config.LoadConfigWithTarget(analyzeConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI flags win over config file values
	if analyzeShowDetails {
		cfg.Output.ShowDetails = true
	}
	if analyzeOutputDir != "" {
		cfg.Output.Directory = analyzeOutputDir
	}

	format := domain.OutputFormat(cfg.Output.Format)
	if analyzeFormat != "" {
		format = domain.OutputFormat(analyzeFormat)
	}
	if analyzeJSON {
		format = domain.OutputFormatJSON
	}
	switch format {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatMarkdown:
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	exportFormats := make([]domain.ExportFormat, 0, len(analyzeExports))
	for _, name := range analyzeExports {
		switch export := domain.ExportFormat(name); export {
		case domain.ExportFormatMarkdown, domain.ExportFormatJSON:
			exportFormats = append(exportFormats, export)
		default:
			return fmt.Errorf("unsupported export format: %s", name)
		}
	}

	// Progress bars stay off for machine-readable output on stdout
	progressEnabled := !analyzeNoProgress && format == domain.OutputFormatText
	pm := service.NewProgressManager(progressEnabled)
	defer pm.Close()

	req := domain.AnalyzeRequest{
		ComplexityThreshold: analyzeThreshold,
		ApplyFormatting:     analyzeApplyFormatting,
		ExportFormats:       exportFormats,
		OutputFormat:        format,
		OutputWriter:        os.Stdout,
		ConfigPath:          analyzeConfigPath,
	}
	if req.ComplexityThreshold <= 0 {
		req.ComplexityThreshold = cfg.Complexity.Threshold
	}

	uc := app.NewAnalyzeUseCase(cfg, pm)
	_, err = uc.Execute(context.Background(), req, args)
	return err
}
