package service

import (
	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.AnalyzeRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.convertToAnalyzeRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, discovering a
// config file near the working directory when one exists
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.AnalyzeRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return c.convertToAnalyzeRequest(cfg)
	}

	// Fall back to hardcoded default configuration
	return c.convertToAnalyzeRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file values. Flags
// win whenever they carry a non-zero value.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.AnalyzeRequest, override *domain.AnalyzeRequest) *domain.AnalyzeRequest {
	merged := *base

	// File list always comes from command arguments
	if len(override.Files) > 0 {
		merged.Files = override.Files
	}

	if override.ComplexityThreshold > 0 {
		merged.ComplexityThreshold = override.ComplexityThreshold
	}

	if override.ApplyFormatting {
		merged.ApplyFormatting = override.ApplyFormatting
	}

	if len(override.ExportFormats) > 0 {
		merged.ExportFormats = override.ExportFormats
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// convertToAnalyzeRequest maps a file configuration to request defaults
func (c *ConfigurationLoaderImpl) convertToAnalyzeRequest(cfg *config.Config) *domain.AnalyzeRequest {
	exportFormats := make([]domain.ExportFormat, 0, len(cfg.Output.ExportFormats))
	for _, format := range cfg.Output.ExportFormats {
		exportFormats = append(exportFormats, domain.ExportFormat(format))
	}

	return &domain.AnalyzeRequest{
		ComplexityThreshold: cfg.Complexity.Threshold,
		ExportFormats:       exportFormats,
		OutputFormat:        domain.OutputFormat(cfg.Output.Format),
	}
}
