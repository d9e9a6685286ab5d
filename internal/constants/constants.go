package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "pyrefine"

	// ConfigFileName is the default config file name
	ConfigFileName = "pyrefine.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "PYREFINE"
)

// Analysis type constants
const (
	AnalysisStyle      = "style"
	AnalysisFormatting = "formatting"
	AnalysisComplexity = "complexity"
	AnalysisBugs       = "bugs"
)

// Output format constants
const (
	OutputFormatText     = "text"
	OutputFormatJSON     = "json"
	OutputFormatYAML     = "yaml"
	OutputFormatMarkdown = "markdown"
)

// File extension constants
const (
	PythonExtension     = ".py"
	PythonStubExtension = ".pyi"
)
