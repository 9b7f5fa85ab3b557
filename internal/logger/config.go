package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT" envDefault:"text"`

	// Log Output: file, stdout, both
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`

	// Log Rotation
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`  // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"` // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`     // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"` // Nén file cũ

	// Log Paths
	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
}

// DefaultConfig trả về cấu hình đọc từ environment variables.
// Khi LOG_LEVEL/LOG_FORMAT không được set: development dùng debug + text, môi trường khác dùng info + json.
func DefaultConfig() *LogConfig {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		// Giá trị env sai định dạng (ví dụ LOG_MAX_SIZE=abc): quay về stdout để không mất log
		cfg.Level = "info"
		cfg.Format = "text"
		cfg.Output = "stdout"
	}

	if os.Getenv("LOG_LEVEL") == "" && goEnv == "development" {
		cfg.Level = "debug"
	}
	if os.Getenv("LOG_FORMAT") == "" && goEnv != "development" {
		cfg.Format = "json"
	}
	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)

	return cfg
}

func (c *LogConfig) writesFile() bool {
	return c.Output == "file" || c.Output == "both"
}

func (c *LogConfig) writesStdout() bool {
	return c.Output == "stdout" || c.Output == "both"
}
