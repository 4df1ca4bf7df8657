package config

import "github.com/caarlos0/env/v11"

// LogConfig controls the zerolog sink. With File unset everything
// goes to stdout; with it set the file is capped at MaxMB and
// truncated when full.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_FILE_MAX_MB" envDefault:"64"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
