package config

import "strconv"

// ProjectType represents the type of Python project
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypeLibrary ProjectType = "library"
	ProjectTypeWebApp  ProjectType = "webapp"
	ProjectTypeData    ProjectType = "data"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds configuration presets for different project types
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	LowThreshold int
	Threshold    int
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{
				"**/*.py",
				"**/*.pyi",
			},
			ExcludePatterns: []string{
				"**/.venv/**",
				"**/venv/**",
				"**/__pycache__/**",
				"**/build/**",
				"**/dist/**",
			},
		},
		ProjectTypeLibrary: {
			IncludePatterns: []string{
				"src/**/*.py",
				"**/*.pyi",
			},
			ExcludePatterns: []string{
				"**/.venv/**",
				"**/venv/**",
				"**/__pycache__/**",
				"**/build/**",
				"**/dist/**",
				"**/*.egg-info/**",
				"**/docs/**",
			},
		},
		ProjectTypeWebApp: {
			IncludePatterns: []string{
				"**/*.py",
			},
			ExcludePatterns: []string{
				"**/.venv/**",
				"**/venv/**",
				"**/__pycache__/**",
				"**/migrations/**",
				"**/static/**",
				"**/templates/**",
				"**/node_modules/**",
			},
		},
		ProjectTypeData: {
			IncludePatterns: []string{
				"**/*.py",
			},
			ExcludePatterns: []string{
				"**/.venv/**",
				"**/venv/**",
				"**/__pycache__/**",
				"**/.ipynb_checkpoints/**",
				"**/data/**",
				"**/notebooks/**",
			},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			LowThreshold: 10,
			Threshold:    20,
		},
		StrictnessStandard: {
			LowThreshold: 5,
			Threshold:    10,
		},
		StrictnessStrict: {
			LowThreshold: 3,
			Threshold:    7,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	projectPresets := GetProjectPresets()
	strictnessPresets := GetStrictnessPresets()

	preset := projectPresets[projectType]
	strict := strictnessPresets[strictness]

	includePatterns := formatYAMLList(preset.IncludePatterns)
	excludePatterns := formatYAMLList(preset.ExcludePatterns)

	return `# pyrefine configuration
# Documentation: https://github.com/coderefinery/pyrefine

# ==============================================================================
# COMPLEXITY ANALYSIS
# ==============================================================================
# Cyclomatic complexity of each function, measured over the whole
# function body including nested definitions.
complexity:
  # Enable/disable complexity analysis
  enabled: true

  # Functions with complexity <= this value are considered low risk
  low_threshold: ` + strconv.Itoa(strict.LowThreshold) + `

  # Functions above this value are counted as complexity violations
  threshold: ` + strconv.Itoa(strict.Threshold) + `

# ==============================================================================
# EXTERNAL TOOLS
# ==============================================================================
# Tools are probed once per run; missing tools fall back to built-in
# heuristic analysis.
tools:
  use_flake8: true
  use_black: true
  use_radon: true

  # Per-invocation timeout in seconds
  timeout_seconds: 30

# ==============================================================================
# OUTPUT SETTINGS
# ==============================================================================
output:
  # Output format: "text", "json", "yaml", "markdown"
  format: text

  # Show detailed per-file breakdown
  show_details: true

  # Report artifacts to generate: markdown, json
  export_formats: []

# ==============================================================================
# ANALYSIS SCOPE
# ==============================================================================
analysis:
  # File patterns to include (glob patterns)
  include_patterns:
` + includePatterns + `
  # File patterns to exclude (glob patterns)
  exclude_patterns:
` + excludePatterns + `
  # Recurse into directories
  recursive: true

  # Skip files matched by .gitignore
  respect_gitignore: true
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# pyrefine configuration (minimal)
# See full options: https://github.com/coderefinery/pyrefine

complexity:
  enabled: true
  threshold: 10

tools:
  use_flake8: true
  use_black: true
  use_radon: true

analysis:
  include_patterns: ["**/*.py", "**/*.pyi"]
  exclude_patterns: ["**/.venv/**", "**/__pycache__/**"]
`
}

// formatYAMLList formats a string slice as an indented YAML list
func formatYAMLList(items []string) string {
	result := ""
	for _, item := range items {
		result += `    - "` + item + `"` + "\n"
	}
	return result
}
