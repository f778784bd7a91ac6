package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Addr              string        `env:"RUN_ADDRESS" env-default:":8080"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	CacheTTL          time.Duration `env:"CACHE_TTL" env-default:"24h"`
	StrictValidation  bool          `env:"STRICT_VALIDATION" env-default:"false"`
	RateLimitCapacity int           `env:"RATE_LIMIT_CAPACITY" env-default:"5"`
	RateLimitRefill   time.Duration `env:"RATE_LIMIT_REFILL" env-default:"1m"`
	LogLevel          string        `env:"LOG_LEVEL" env-default:"info"`
	LogFormat         string        `env:"LOG_FORMAT" env-default:"text"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads the environment, then applies command-line flags that were set
// explicitly in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	fs := flag.NewFlagSet("credit-limit", flag.ContinueOnError)
	addr := fs.String("a", cfg.Addr, "HTTP listen address")
	redisAddr := fs.String("r", cfg.RedisAddr, "Redis address, empty for the in-memory cache")
	strict := fs.Bool("strict", cfg.StrictValidation, "reject negative income and scores outside 300-850")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("couldn't parse flags: %w", err)
	}
	cfg.Addr = *addr
	cfg.RedisAddr = *redisAddr
	cfg.StrictValidation = *strict

	if cfg.RateLimitCapacity <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", cfg.RateLimitCapacity)
	}
	if cfg.RateLimitRefill <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REFILL must be positive, got %s", cfg.RateLimitRefill)
	}

	return cfg, nil
}
