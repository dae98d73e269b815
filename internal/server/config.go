// Package server provides configuration helpers that define runtime defaults,
// validation, and rate-limiting parameters for the RoomChat service.
package server

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
)

const (
	defaultPort            = ":8080"
	defaultOrigin          = "http://localhost:8080"
	defaultMaxMessageSize  = 512
	defaultBurst           = 5
	defaultRefillInterval  = time.Second
	defaultSendBufferSize  = 256
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "INFO"
	defaultAMQPExchange    = "roomchat.activity"
)

// RateLimitConfig defines the parameters for per-connection event rate limiting.
type RateLimitConfig struct {
	Burst          int
	RefillInterval time.Duration
}

// Config holds the server configuration settings including security controls.
type Config struct {
	Port                    string        `env:"SERVER_PORT,default=:8080"`
	AllowedOrigins          string        `env:"ALLOWED_ORIGINS,default=http://localhost:8080"`
	MaxMessageSize          int           `env:"MAX_MESSAGE_SIZE,default=512"`
	RateLimitBurst          int           `env:"RATE_LIMIT_BURST,default=5"`
	RateLimitRefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL,default=1s"`
	SendBufferSize          int           `env:"SEND_BUFFER_SIZE,default=256"`
	ShutdownTimeout         time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	LogLevel                string        `env:"LOG_LEVEL,default=INFO"`
	ProfanityWordsFile      string        `env:"PROFANITY_WORDS_FILE"`
	AMQPURL                 string        `env:"AMQP_URL"`
	AMQPExchange            string        `env:"AMQP_EXCHANGE,default=roomchat.activity"`
}

// NewConfig creates a Config instance populated with default values for all settings.
func NewConfig() *Config {
	return &Config{
		Port:                    defaultPort,
		AllowedOrigins:          defaultOrigin,
		MaxMessageSize:          defaultMaxMessageSize,
		RateLimitBurst:          defaultBurst,
		RateLimitRefillInterval: defaultRefillInterval,
		SendBufferSize:          defaultSendBufferSize,
		ShutdownTimeout:         defaultShutdownTimeout,
		LogLevel:                defaultLogLevel,
		AMQPExchange:            defaultAMQPExchange,
	}
}

// LoadConfig reads the configuration from environment variables, applying
// defaults for anything unset or out of range.
func LoadConfig() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}
	cfg.Sanitize()
	return &cfg, nil
}

// Sanitize replaces empty or non-positive settings with their defaults.
func (c *Config) Sanitize() {
	if strings.TrimSpace(c.Port) == "" {
		c.Port = defaultPort
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = defaultMaxMessageSize
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = defaultBurst
	}
	if c.RateLimitRefillInterval <= 0 {
		c.RateLimitRefillInterval = defaultRefillInterval
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = defaultSendBufferSize
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(c.AMQPExchange) == "" {
		c.AMQPExchange = defaultAMQPExchange
	}
}

// Origins splits the comma-separated AllowedOrigins setting.
func (c *Config) Origins() []string {
	return parseOrigins(c.AllowedOrigins)
}

// RateLimit groups the rate-limiting settings.
func (c *Config) RateLimit() RateLimitConfig {
	return RateLimitConfig{
		Burst:          c.RateLimitBurst,
		RefillInterval: c.RateLimitRefillInterval,
	}
}

func parseOrigins(origins string) []string {
	if strings.TrimSpace(origins) == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
