package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default complexity thresholds based on McCabe complexity standards
const (
	// DefaultComplexityThreshold marks a function as a violation when
	// its complexity strictly exceeds it
	DefaultComplexityThreshold = 10

	// DefaultLowComplexityThreshold is the upper bound for low-risk
	// functions
	DefaultLowComplexityThreshold = 5
)

// DefaultToolTimeoutSeconds bounds a single external tool invocation
const DefaultToolTimeoutSeconds = 30

// Config represents the main configuration structure
type Config struct {
	// Complexity holds complexity analysis configuration
	Complexity ComplexityConfig `json:"complexity" mapstructure:"complexity" yaml:"complexity"`

	// Tools holds external tool configuration
	Tools ToolsConfig `json:"tools" mapstructure:"tools" yaml:"tools"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file collection configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`

	// Performance holds parallel execution configuration
	Performance PerformanceConfig `json:"performance,omitempty" mapstructure:"performance" yaml:"performance"`
}

// PerformanceConfig holds configuration for parallel execution
type PerformanceConfig struct {
	// MaxGoroutines caps concurrent file analyses (0 = one per CPU)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole analysis run (0 = default)
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ComplexityConfig holds configuration for cyclomatic complexity analysis
type ComplexityConfig struct {
	// Threshold marks functions as violations above this value
	Threshold int `json:"threshold" mapstructure:"threshold" yaml:"threshold"`

	// LowThreshold is the upper bound for low complexity (inclusive)
	LowThreshold int `json:"lowThreshold" mapstructure:"low_threshold" yaml:"low_threshold"`

	// Enabled controls whether complexity analysis is performed
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`
}

// ToolsConfig holds configuration for the external Python tools
type ToolsConfig struct {
	// UseFlake8 allows flake8 when it is found on PATH
	UseFlake8 bool `json:"use_flake8" mapstructure:"use_flake8" yaml:"use_flake8"`

	// UseBlack allows black when it is found on PATH
	UseBlack bool `json:"use_black" mapstructure:"use_black" yaml:"use_black"`

	// UseRadon allows radon when it is found on PATH
	UseRadon bool `json:"use_radon" mapstructure:"use_radon" yaml:"use_radon"`

	// TimeoutSeconds bounds a single tool invocation
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show the per-file breakdown
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// ExportFormats selects derived report artifacts: markdown, json
	ExportFormats []string `json:"export_formats" mapstructure:"export_formats" yaml:"export_formats"`

	// Directory specifies where exported reports are written
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// AnalysisConfig holds configuration for file collection
type AnalysisConfig struct {
	// IncludePatterns are glob patterns for files to analyze
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns are glob patterns for files to skip
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive enables directory traversal
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// FollowSymlinks enables following symbolic links during traversal
	FollowSymlinks bool `json:"follow_symlinks" mapstructure:"follow_symlinks" yaml:"follow_symlinks"`

	// RespectGitignore skips files matched by .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Complexity: ComplexityConfig{
			Threshold:    DefaultComplexityThreshold,
			LowThreshold: DefaultLowComplexityThreshold,
			Enabled:      true,
		},
		Tools: ToolsConfig{
			UseFlake8:      true,
			UseBlack:       true,
			UseRadon:       true,
			TimeoutSeconds: DefaultToolTimeoutSeconds,
		},
		Output: OutputConfig{
			Format:        "text",
			ShowDetails:   false,
			ExportFormats: []string{},
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.py", "**/*.pyi"},
			ExcludePatterns: []string{
				// Virtual environments and caches
				".venv",
				"venv",
				"__pycache__",
				".tox",
				".mypy_cache",
				".pytest_cache",
				// Build outputs
				"build",
				"dist",
				"*.egg-info",
				// Version control
				".git",
			},
			Recursive:        true,
			FollowSymlinks:   false,
			RespectGitignore: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: 0,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// When no explicit path is given, one is discovered near the target.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common
// locations. targetPath is the path being analyzed.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"pyrefine.yaml",
		"pyrefine.yml",
		".pyrefine.yaml",
		".pyrefine.yml",
		"pyrefine.json",
		".pyrefine.json",
	}

	// Search upward from the target path
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "pyrefine"), candidates); config != "" {
			return config
		}
	}

	// Check ~/.config/pyrefine/ and the home directory itself
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "pyrefine")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// Check PYREFINE_CONFIG environment variable as fallback
	if envConfig := os.Getenv("PYREFINE_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Complexity.Threshold < 1 {
		return fmt.Errorf("complexity.threshold must be >= 1, got %d", c.Complexity.Threshold)
	}

	if c.Complexity.LowThreshold < 1 {
		return fmt.Errorf("complexity.low_threshold must be >= 1, got %d", c.Complexity.LowThreshold)
	}

	if c.Complexity.LowThreshold > c.Complexity.Threshold {
		return fmt.Errorf("complexity.low_threshold (%d) must be <= threshold (%d)",
			c.Complexity.LowThreshold, c.Complexity.Threshold)
	}

	if c.Tools.TimeoutSeconds < 1 {
		return fmt.Errorf("tools.timeout_seconds must be >= 1, got %d", c.Tools.TimeoutSeconds)
	}

	validFormats := map[string]bool{
		"text":     true,
		"json":     true,
		"yaml":     true,
		"markdown": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, markdown", c.Output.Format)
	}

	validExports := map[string]bool{
		"markdown": true,
		"json":     true,
	}
	for _, format := range c.Output.ExportFormats {
		if !validExports[format] {
			return fmt.Errorf("invalid output.export_formats entry '%s', must be one of: markdown, json", format)
		}
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	return nil
}

// AssessRiskLevel determines risk level based on complexity and thresholds
func (c *ComplexityConfig) AssessRiskLevel(complexity int) string {
	if complexity <= c.LowThreshold {
		return "low"
	} else if complexity <= c.Threshold {
		return "medium"
	}
	return "high"
}

// ExceedsThreshold checks if complexity exceeds the configured threshold
func (c *ComplexityConfig) ExceedsThreshold(complexity int) bool {
	return complexity > c.Threshold
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("complexity", config.Complexity)
	v.Set("tools", config.Tools)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
