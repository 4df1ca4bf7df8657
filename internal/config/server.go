package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// One of the two blob backends. A DSN selects Postgres; otherwise
	// the snapshot lives in DataFile.
	PostgresDSN string `env:"POSTGRES_DSN"`
	DataFile    string `env:"DATA_FILE" envDefault:"bingo_state.json"`

	DrawInterval  time.Duration `env:"DRAW_INTERVAL" envDefault:"5s"`
	DefaultSeats  int           `env:"DEFAULT_SEATS" envDefault:"10"`
	MaxSeats      int           `env:"MAX_SEATS" envDefault:"25"`
	ClaimCooldown time.Duration `env:"CLAIM_COOLDOWN" envDefault:"2s"`

	PushEnabled        bool          `env:"PUSH_ENABLED" envDefault:"false"`
	PushWebhookURL     string        `env:"PUSH_WEBHOOK_URL"`
	OperatorWebhookURL string        `env:"OPERATOR_WEBHOOK_URL"`
	PushTimeout        time.Duration `env:"PUSH_TIMEOUT" envDefault:"5s"`
	PushWorkers        int           `env:"PUSH_WORKERS" envDefault:"2"`
	PushRetryMax       int           `env:"PUSH_RETRY_MAX" envDefault:"2"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
