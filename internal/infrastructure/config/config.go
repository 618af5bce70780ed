package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Ledger        LedgerConfig
	Wallet        WalletConfig
	Session       SessionConfig
	Notifications NotificationConfig
	Mongo         MongoConfig
	Redis         RedisConfig
}

type LedgerConfig struct {
	// DevMode forces the local network regardless of the caller's dev flag.
	DevMode        bool          `env:"LEDGER_DEV_MODE,        default=false"`
	DevNodeURL     string        `env:"LEDGER_DEV_NODE_URL,    default=http://localhost:7740"`
	BlockchainRID  string        `env:"LEDGER_BLOCKCHAIN_RID"`
	NodeURLs       []string      `env:"LEDGER_NODE_URLS"`
	RequestTimeout time.Duration `env:"LEDGER_REQUEST_TIMEOUT, default=30s"`
	PollInterval   time.Duration `env:"LEDGER_POLL_INTERVAL,   default=500ms"`
	ConfirmTimeout time.Duration `env:"LEDGER_CONFIRM_TIMEOUT, default=60s"`
}

type WalletConfig struct {
	KeyFile    string `env:"WALLET_KEY_FILE, default=wallet.json"`
	Passphrase string `env:"WALLET_PASSPHRASE"`
}

type SessionConfig struct {
	TTL           time.Duration `env:"SESSION_TTL,            default=2h"`
	SweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE, default=@every 30s"`
}

type NotificationConfig struct {
	Limit int `env:"NOTIFICATION_LIMIT, default=100"`
}

// MongoConfig enables the activity journal when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=voucher_vault"`
}

// RedisConfig moves notifications and mint flags to Redis when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads the given .env files (".env" when none are given), then the
// environment. Missing .env files are ignored and real environment variables
// always win.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Session.SweepSchedule == "" {
		return errors.New("SESSION_SWEEP_SCHEDULE is required")
	}
	if c.Ledger.BlockchainRID != "" && len(c.Ledger.NodeURLs) == 0 {
		return errors.New("LEDGER_NODE_URLS is required when LEDGER_BLOCKCHAIN_RID is set")
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
