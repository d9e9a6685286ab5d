package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/coderefinery/pyrefine/app"
	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/config"
	"github.com/coderefinery/pyrefine/internal/version"
	"github.com/coderefinery/pyrefine/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries an exit code for the check command
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

// CheckViolation is one threshold violation found during a check run
type CheckViolation struct {
	Category  string `json:"category"`
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Actual    string `json:"actual,omitempty"`
	Threshold string `json:"threshold,omitempty"`
}

// CheckResult is the machine-readable outcome of a check run
type CheckResult struct {
	Passed        bool             `json:"passed"`
	ExitCode      int              `json:"exit_code"`
	Violations    []CheckViolation `json:"violations"`
	FilesAnalyzed int              `json:"files_analyzed"`
	TotalIssues   int              `json:"total_issues"`
	Duration      int64            `json:"duration_ms"`
	GeneratedAt   string           `json:"generated_at"`
	Version       string           `json:"version"`
}

var (
	checkMaxComplexity int
	checkAllowHigh     bool
	checkMaxIssues     int
	checkVerbose       bool
	checkJSON          bool
	checkConfigPath    string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast quality gate for CI/CD pipelines",
		Long: `Run quality checks against configurable thresholds for CI/CD integration.

Exit codes:
  0 - All checks pass
  1 - Quality threshold(s) violated
  2 - Analysis error (file not found, parse error, etc.)

Examples:
  # Basic check with defaults
  pyrefine check src/

  # Strict complexity check
  pyrefine check --max-complexity 5 src/

  # Tolerate high-severity findings
  pyrefine check --allow-high-severity src/

  # JSON output for machine parsing
  pyrefine check --json src/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&checkMaxComplexity, "max-complexity", 10,
		"Maximum allowed cyclomatic complexity per function")
	cmd.Flags().BoolVar(&checkAllowHigh, "allow-high-severity", false,
		"Allow high-severity findings without failing")
	cmd.Flags().IntVar(&checkMaxIssues, "max-issues", -1,
		"Maximum allowed total issues (-1 = unlimited)")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	startTime := time.Now()

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	// Apply config values for flags not explicitly set on CLI
	if !cmd.Flags().Changed("max-complexity") && cfg.Complexity.Threshold > 0 {
		checkMaxComplexity = cfg.Complexity.Threshold
	}

	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	req := domain.AnalyzeRequest{
		ComplexityThreshold: checkMaxComplexity,
		OutputFormat:        domain.OutputFormatText,
		OutputWriter:        io.Discard,
	}

	uc := app.NewAnalyzeUseCase(cfg, pm)
	response, err := uc.Execute(context.Background(), req, args)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	result := &CheckResult{
		Passed:        true,
		Violations:    []CheckViolation{},
		FilesAnalyzed: response.Metrics.FilesAnalyzed,
		TotalIssues:   response.Metrics.TotalIssues,
	}

	for _, file := range response.Files {
		for _, fn := range file.Complexity.Functions {
			if fn.Complexity > checkMaxComplexity {
				result.Passed = false
				result.Violations = append(result.Violations, CheckViolation{
					Category:  "complexity",
					Rule:      "max-complexity",
					Severity:  "error",
					Message:   fmt.Sprintf("Function '%s' has complexity %d", fn.Name, fn.Complexity),
					Actual:    strconv.Itoa(fn.Complexity),
					Threshold: strconv.Itoa(checkMaxComplexity),
				})
			}
		}
	}

	if !checkAllowHigh && response.Metrics.HighSeverity > 0 {
		result.Passed = false
		result.Violations = append(result.Violations, CheckViolation{
			Category:  "severity",
			Rule:      "no-high-severity",
			Severity:  "error",
			Message:   fmt.Sprintf("Found %d high-severity issues", response.Metrics.HighSeverity),
			Actual:    strconv.Itoa(response.Metrics.HighSeverity),
			Threshold: "0",
		})
	}

	if checkMaxIssues >= 0 && response.Metrics.TotalIssues > checkMaxIssues {
		result.Passed = false
		result.Violations = append(result.Violations, CheckViolation{
			Category:  "issues",
			Rule:      "max-issues",
			Severity:  "error",
			Message:   fmt.Sprintf("Found %d total issues (max: %d)", response.Metrics.TotalIssues, checkMaxIssues),
			Actual:    strconv.Itoa(response.Metrics.TotalIssues),
			Threshold: strconv.Itoa(checkMaxIssues),
		})
	}

	return outputCheckResult(result, startTime)
}

func outputCheckResult(result *CheckResult, startTime time.Time) error {
	result.Duration = time.Since(startTime).Milliseconds()
	result.GeneratedAt = time.Now().Format(time.RFC3339)
	result.Version = version.Version
	result.ExitCode = 0
	if !result.Passed {
		result.ExitCode = 1
	}

	if checkJSON {
		return outputCheckJSON(result)
	}
	return outputCheckText(result)
}

func outputCheckText(result *CheckResult) error {
	if result.Passed {
		fmt.Println("PASS: All quality checks passed")
		if checkVerbose {
			fmt.Printf("  Files analyzed: %d\n", result.FilesAnalyzed)
			fmt.Printf("  Total issues: %d\n", result.TotalIssues)
			fmt.Printf("  Duration: %dms\n", result.Duration)
		}
		return nil
	}

	fmt.Println("FAIL: Quality check failed")
	fmt.Printf("  Violations: %d\n", len(result.Violations))

	for _, v := range result.Violations {
		severity := "ERROR"
		if v.Severity == "warning" {
			severity = "WARN"
		}
		fmt.Printf("  [%s] %s: %s\n", severity, v.Category, v.Message)
	}

	if checkVerbose {
		fmt.Printf("\nSummary:\n")
		fmt.Printf("  Files: %d\n", result.FilesAnalyzed)
		fmt.Printf("  Total issues: %d\n", result.TotalIssues)
		fmt.Printf("  Duration: %dms\n", result.Duration)
	}

	return &CheckExitError{Code: 1, Message: ""}
}

func outputCheckJSON(result *CheckResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}
