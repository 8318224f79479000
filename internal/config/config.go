// Package config loads panel-triage settings from config.yaml and TRIAGE_*
// environment variables and builds the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Classifier providers.
const (
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderKeyword   = "keyword"
)

// Config holds the full application configuration.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier" mapstructure:"classifier"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Ollama     OllamaConfig     `yaml:"ollama" mapstructure:"ollama"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Inputs     InputsConfig     `yaml:"inputs" mapstructure:"inputs"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	DocAssist  DocAssistConfig  `yaml:"docassist" mapstructure:"docassist"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ClassifierConfig configures task classification requests.
type ClassifierConfig struct {
	Provider          string        `yaml:"provider" mapstructure:"provider"`
	MaxTokens         int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature       float64       `yaml:"temperature" mapstructure:"temperature"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	TimeoutSecs       int           `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retry             RetryConfig   `yaml:"retry" mapstructure:"retry"`
	Circuit           CircuitConfig `yaml:"circuit" mapstructure:"circuit"`
}

// RetryConfig configures retries of transient provider failures.
type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
}

// CircuitConfig configures the provider circuit breaker.
type CircuitConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// OllamaConfig holds settings for a local Ollama server.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
	Key     string `yaml:"key" mapstructure:"key"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// InputsConfig locates the input tables.
type InputsConfig struct {
	Patients         string `yaml:"patients" mapstructure:"patients"`
	Rules            string `yaml:"rules" mapstructure:"rules"`
	Tasks            string `yaml:"tasks" mapstructure:"tasks"`
	EventTasks       string `yaml:"event_tasks" mapstructure:"event_tasks"`
	Examples         string `yaml:"examples" mapstructure:"examples"`
	StructuredFields string `yaml:"structured_fields" mapstructure:"structured_fields"`
}

// OutputConfig configures where results are written.
type OutputConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DocAssistConfig configures the documentation assistant.
type DocAssistConfig struct {
	Phase     string `yaml:"phase" mapstructure:"phase"`
	MaxRounds int    `yaml:"max_rounds" mapstructure:"max_rounds"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("classifier.provider", ProviderOllama)
	v.SetDefault("classifier.max_tokens", 64)
	v.SetDefault("classifier.temperature", 0.0)
	v.SetDefault("classifier.requests_per_second", 5.0)
	v.SetDefault("classifier.timeout_secs", 60)
	v.SetDefault("classifier.retry.max_attempts", 3)
	v.SetDefault("classifier.retry.initial_backoff_ms", 500)
	v.SetDefault("classifier.retry.max_backoff_ms", 10000)
	v.SetDefault("classifier.circuit.failure_threshold", 5)
	v.SetDefault("classifier.circuit.reset_timeout_secs", 30)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("ollama.base_url", "http://localhost:11434/v1")
	v.SetDefault("ollama.model", "llama3.2")
	v.SetDefault("ollama.key", "ollama")
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("inputs.patients", "data/patient_data.csv")
	v.SetDefault("inputs.rules", "data/priority_rules.csv")
	v.SetDefault("inputs.tasks", "data/patient_freeform_tasks.csv")
	v.SetDefault("inputs.event_tasks", "")
	v.SetDefault("inputs.examples", "data/risk_factor_examples.csv")
	v.SetDefault("inputs.structured_fields", "data/structured_fields.csv")
	v.SetDefault("output.path", "categorized_tasks_with_ranking.csv")
	v.SetDefault("output.format", "csv")
	v.SetDefault("docassist.phase", "all")
	v.SetDefault("docassist.max_rounds", 1)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. mode is the command name:
// "prioritize", "classify", "document", or "rules".
func (c *Config) Validate(mode string) error {
	var problems []string
	require := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	switch mode {
	case "prioritize":
		require(c.Inputs.Patients != "", "inputs.patients is required")
		require(c.Inputs.Rules != "", "inputs.rules is required")
		require(c.Inputs.Tasks != "", "inputs.tasks is required")
		require(c.Batch.Concurrency >= 1 && c.Batch.Concurrency <= 64, "batch.concurrency must be between 1 and 64")
		switch c.Output.Format {
		case "csv", "xlsx", "json", "table":
		default:
			problems = append(problems, "output.format must be one of csv, xlsx, json, table")
		}
		problems = append(problems, c.providerProblems(true)...)
	case "classify":
		problems = append(problems, c.providerProblems(true)...)
	case "document":
		require(c.Inputs.StructuredFields != "", "inputs.structured_fields is required")
		require(c.DocAssist.MaxRounds >= 1, "docassist.max_rounds must be >= 1")
		require(c.Classifier.Provider != ProviderKeyword, "docassist needs an LLM provider (ollama or anthropic)")
		problems = append(problems, c.providerProblems(false)...)
	case "rules":
		require(c.Inputs.Rules != "", "inputs.rules is required")
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) providerProblems(allowKeyword bool) []string {
	var problems []string
	switch c.Classifier.Provider {
	case ProviderAnthropic:
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
		if c.Anthropic.Model == "" {
			problems = append(problems, "anthropic.model is required")
		}
	case ProviderOllama:
		if c.Ollama.Model == "" {
			problems = append(problems, "ollama.model is required")
		}
	case ProviderKeyword:
		if !allowKeyword {
			return problems
		}
	default:
		problems = append(problems, "classifier.provider must be one of ollama, anthropic, keyword")
	}
	if c.Classifier.MaxTokens <= 0 {
		problems = append(problems, "classifier.max_tokens must be > 0")
	}
	return problems
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
