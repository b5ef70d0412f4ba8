package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "EDA"

// Config represents the complete application configuration
type Config struct {
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PipelineConfig locates the input file and the directory artifacts are written to
type PipelineConfig struct {
	InputFile    string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	ManifestFile string `yaml:"manifest_file" envconfig:"MANIFEST_FILE"`
}

// ChartsConfig contains chart rendering configuration. Sizes are in inches.
type ChartsConfig struct {
	Width         float64 `yaml:"width" envconfig:"WIDTH" validate:"gt=0"`
	Height        float64 `yaml:"height" envconfig:"HEIGHT" validate:"gt=0"`
	HeatMapWidth  float64 `yaml:"heatmap_width" envconfig:"HEATMAP_WIDTH" validate:"gt=0"`
	HeatMapHeight float64 `yaml:"heatmap_height" envconfig:"HEATMAP_HEIGHT" validate:"gt=0"`
	Parallelism   int     `yaml:"parallelism" envconfig:"PARALLELISM" validate:"gte=1,lte=16"`
}

// ExportConfig names the cleaned dataset outputs
type ExportConfig struct {
	CleanedFile string `yaml:"cleaned_file" envconfig:"CLEANED_FILE" validate:"required"`
	XLSXFile    string `yaml:"xlsx_file" envconfig:"XLSX_FILE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stderr stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Environment   string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Default returns the configuration used when nothing is overridden.
// Output file names are fixed.
func Default() Config {
	return Config{
		Pipeline: PipelineConfig{
			InputFile: DefaultInputFile,
			OutputDir: ".",
		},
		Charts: ChartsConfig{
			Width:         DefaultChartWidth,
			Height:        DefaultChartHeight,
			HeatMapWidth:  DefaultHeatMapWidth,
			HeatMapHeight: DefaultHeatMapHeight,
			Parallelism:   1,
		},
		Export: ExportConfig{
			CleanedFile: DefaultCleanedFile,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stderr",
			FilePath: "logs/eda.log",
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
			Environment:   "development",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// EDA_* environment variables, in increasing order of precedence.
// An empty configFile falls back to EDA_CONFIG_FILE and then DefaultConfigFile.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG_FILE")
	}
	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile
	}

	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	// Fields without a matching variable keep their file or default value
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("logging output %q requires a file path", c.Logging.Output)
	}

	return nil
}
