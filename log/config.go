package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"moul.io/zapfilter"
)

// Config describes the optional log configuration file. Filters use the
// zapfilter rule syntax, for example "debug:analysis.*,timing.*".
type Config struct {
	DefaultLevel string   `yaml:"defaultLevel"`
	Filters      []string `yaml:"filters"`
}

func LoadConfig(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewWithConfig builds a logger whose named sub-loggers are filtered
// according to cfg. Loggers not matched by any rule use cfg.DefaultLevel.
func NewWithConfig(cfg *Config, w io.Writer, format string, opts ...Option) (
	*Logger, error,
) {
	if w == nil {
		w = os.Stderr
	}
	defLevel, err := ParseLevel(cfg.DefaultLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid defaultLevel %q: %w", cfg.DefaultLevel, err)
	}
	var enc zapcore.Encoder
	switch format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	default:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}

	rules := fmt.Sprintf("%s:*", cfg.DefaultLevel)
	for _, f := range cfg.Filters {
		rules += " " + f
	}
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid filter rules: %w", err)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel)
	return &Logger{
		l:     zap.New(zapfilter.NewFilteringCore(core, filter), opts...),
		level: defLevel,
	}, nil
}
