package config

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Access: comma-separated chat user ids
	AdminIDs string `mapstructure:"ADMIN_IDS"`
	UserIDs  string `mapstructure:"USER_IDS"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Gateway auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	ReportEmail  string `mapstructure:"REPORT_EMAIL"`

	// Business
	ShopName           string `mapstructure:"SHOP_NAME"`
	ReceiptStoragePath string `mapstructure:"RECEIPT_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("WORKER_POOL_SIZE", 2)
	v.SetDefault("ADMIN_IDS", "")
	v.SetDefault("USER_IDS", "")
	v.SetDefault("REDIS_URL", "") // empty disables receipts and closing export
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24*30)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("REPORT_EMAIL", "")
	v.SetDefault("SHOP_NAME", "Matcha Kasir")
	v.SetDefault("RECEIPT_STORAGE_PATH", "/tmp/kasir-bot/receipts")

	// Optional .env file for local development; missing is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Admins returns the parsed administrator id set.
func (c *Config) Admins() []int64 { return ParseIDSet(c.AdminIDs) }

// Operators returns the parsed regular operator id set.
func (c *Config) Operators() []int64 { return ParseIDSet(c.UserIDs) }

// MailEnabled is true when both an SMTP host and a report recipient are set.
func (c *Config) MailEnabled() bool { return c.SMTPHost != "" && c.ReportEmail != "" }

// ParseIDSet splits a comma-separated id list. Blank and non-numeric
// entries are skipped; duplicates are collapsed.
func ParseIDSet(raw string) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warn().Str("value", part).Msg("config: ignoring invalid operator id")
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
