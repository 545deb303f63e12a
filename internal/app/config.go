package app

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmelchor/symreg-backend/internal/data/db"
	"github.com/dmelchor/symreg-backend/internal/platform/envutil"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr       string    `yaml:"http_addr"`
	LogMode        string    `yaml:"log_mode"`
	Environment    string    `yaml:"environment"`
	UploadMaxBytes int64     `yaml:"upload_max_bytes"`
	DB             db.Config `yaml:"db"`
}

// LoadConfig layers defaults, an optional YAML file (CONFIG_FILE), and
// environment variables, in that order of precedence (env wins).
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		HTTPAddr:       ":8013",
		LogMode:        "development",
		Environment:    "local",
		UploadMaxBytes: 32 << 20,
		DB: db.Config{
			Driver:       "postgres",
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "",
			Name:         "symreg",
			Path:         "symreg.db",
			MaxOpenConns: 10,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("could not read config file", "path", path, "error", err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn("could not parse config file", "path", path, "error", err)
		}
	}

	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.Environment = envutil.String("ENVIRONMENT", cfg.Environment)
	cfg.UploadMaxBytes = int64(envutil.Int("UPLOAD_MAX_BYTES", int(cfg.UploadMaxBytes)))
	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = envutil.String("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envutil.String("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envutil.String("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envutil.String("POSTGRES_NAME", cfg.DB.Name)
	cfg.DB.Path = envutil.String("SQLITE_PATH", cfg.DB.Path)
	cfg.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	return cfg
}
