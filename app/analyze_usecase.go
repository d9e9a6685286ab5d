package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/config"
	"github.com/coderefinery/pyrefine/service"
)

// exportFileNames maps export formats to output file names
var exportFileNames = map[domain.ExportFormat]string{
	domain.ExportFormatMarkdown: "analysis_report.md",
	domain.ExportFormatJSON:     "analysis_report.json",
}

// AnalyzeUseCase orchestrates file collection, analysis, and output
type AnalyzeUseCase struct {
	cfg        *config.Config
	service    domain.AnalyzeService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewAnalyzeUseCase creates a use case wired with the default services
func NewAnalyzeUseCase(cfg *config.Config, progress domain.ProgressManager) *AnalyzeUseCase {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &AnalyzeUseCase{
		cfg:        cfg,
		service:    service.NewAnalyzeService(cfg, progress),
		formatter:  service.NewOutputFormatter(cfg.Output.ShowDetails),
		fileHelper: NewFileHelperWithOptions(cfg.Analysis.RespectGitignore),
	}
}

// Execute collects Python files from the given paths, analyzes them, and
// writes the report to the request's output writer
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest, paths []string) (*domain.AnalyzeResponse, error) {
	files, err := ResolveFilePaths(
		uc.fileHelper,
		paths,
		uc.cfg.Analysis.Recursive,
		uc.cfg.Analysis.IncludePatterns,
		uc.cfg.Analysis.ExcludePatterns,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to collect Python files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Python files found in the specified paths")
	}

	sources := make([]domain.SourceFile, 0, len(files))
	for _, path := range files {
		content, err := uc.fileHelper.ReadFile(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		sources = append(sources, domain.SourceFile{
			Path:     path,
			Language: domain.LanguagePython,
			Content:  string(content),
		})
	}
	req.Files = sources

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}
	format := req.OutputFormat
	if format == "" {
		format = domain.OutputFormatText
	}
	if err := uc.formatter.Write(response, format, writer); err != nil {
		return nil, err
	}

	if len(response.Exports) > 0 {
		if err := uc.writeExports(response.Exports); err != nil {
			return nil, err
		}
	}

	return response, nil
}

// writeExports stores derived report artifacts in the output directory
func (uc *AnalyzeUseCase) writeExports(exports map[domain.ExportFormat]string) error {
	dir := uc.cfg.Output.Directory
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewOutputError("failed to create export directory", err)
	}

	for format, content := range exports {
		name, ok := exportFileNames[format]
		if !ok {
			return domain.NewUnsupportedFormatError(string(format))
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to write %s", path), err)
		}
	}
	return nil
}

// AnalyzeUseCaseBuilder assembles a use case from parts, mostly for tests
type AnalyzeUseCaseBuilder struct {
	cfg        *config.Config
	service    domain.AnalyzeService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
	progress   domain.ProgressManager
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithConfig sets the configuration
func (b *AnalyzeUseCaseBuilder) WithConfig(cfg *config.Config) *AnalyzeUseCaseBuilder {
	b.cfg = cfg
	return b
}

// WithService sets the analysis service
func (b *AnalyzeUseCaseBuilder) WithService(s domain.AnalyzeService) *AnalyzeUseCaseBuilder {
	b.service = s
	return b
}

// WithFormatter sets the output formatter
func (b *AnalyzeUseCaseBuilder) WithFormatter(f domain.OutputFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = f
	return b
}

// WithFileHelper sets the file helper
func (b *AnalyzeUseCaseBuilder) WithFileHelper(fh *FileHelper) *AnalyzeUseCaseBuilder {
	b.fileHelper = fh
	return b
}

// WithProgressManager sets the progress manager
func (b *AnalyzeUseCaseBuilder) WithProgressManager(pm domain.ProgressManager) *AnalyzeUseCaseBuilder {
	b.progress = pm
	return b
}

// Build creates the AnalyzeUseCase, filling in defaults for unset parts
func (b *AnalyzeUseCaseBuilder) Build() *AnalyzeUseCase {
	cfg := b.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	progress := b.progress
	if progress == nil {
		progress = &service.NoOpProgressManager{}
	}

	uc := &AnalyzeUseCase{
		cfg:        cfg,
		service:    b.service,
		formatter:  b.formatter,
		fileHelper: b.fileHelper,
	}
	if uc.service == nil {
		uc.service = service.NewAnalyzeService(cfg, progress)
	}
	if uc.formatter == nil {
		uc.formatter = service.NewOutputFormatter(cfg.Output.ShowDetails)
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelperWithOptions(cfg.Analysis.RespectGitignore)
	}
	return uc
}
