package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"clublink/internal/utils"
)

// EnvPrefix is prepended to every environment override, e.g. CLUBLINK_DB_HOST.
const EnvPrefix = "CLUBLINK"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Database  DatabaseConfig  `yaml:"database" envconfig:"DB"`
	Redis     RedisConfig     `yaml:"redis" envconfig:"REDIS"`
	Email     EmailConfig     `yaml:"email" envconfig:"EMAIL"`
	SMTP      SMTPConfig      `yaml:"smtp" envconfig:"SMTP"`
	JWT       JWTConfig       `yaml:"jwt" envconfig:"JWT"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Waitlist  WaitlistConfig  `yaml:"waitlist" envconfig:"WAITLIST"`
	Scheduler SchedulerConfig `yaml:"scheduler" envconfig:"SCHEDULER"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"database"`
	SSLMode      string `yaml:"ssl_mode" split_words:"true"`
	MaxOpenConns int    `yaml:"max_open_conns" split_words:"true"`
	MaxIdleConns int    `yaml:"max_idle_conns" split_words:"true"`
}

// RedisConfig locates the Redis instance used for job run locks. Empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// EmailConfig selects the outbound mail provider: "sendgrid", "smtp" or "log".
type EmailConfig struct {
	Provider       string `yaml:"provider"`
	From           string `yaml:"from"`
	FromName       string `yaml:"from_name" split_words:"true"`
	SendGridAPIKey string `yaml:"sendgrid_api_key" envconfig:"SENDGRID_API_KEY"`
}

// SMTPConfig contains SMTP relay settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// JWTConfig contains token signing settings
type JWTConfig struct {
	Secret            string        `yaml:"secret"`
	AccessTokenExpiry time.Duration `yaml:"access_token_expiry" split_words:"true"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format     string `yaml:"format"` // "json" or "text"
	FilePath   string `yaml:"file_path" split_words:"true"`
	MaxSizeMB  int    `yaml:"max_size_mb" split_words:"true"`
	MaxBackups int    `yaml:"max_backups" split_words:"true"`
	MaxAgeDays int    `yaml:"max_age_days" split_words:"true"`
	Compress   bool   `yaml:"compress"`
}

// WaitlistConfig contains the admission rules for waitlisted associates
type WaitlistConfig struct {
	AdmissionThreshold float64       `yaml:"admission_threshold" split_words:"true"`
	InvitationTTL      time.Duration `yaml:"invitation_ttl" split_words:"true"`
	FrontendBaseURL    string        `yaml:"frontend_base_url" split_words:"true"`
	LockTTL            time.Duration `yaml:"lock_ttl" split_words:"true"`
}

// SchedulerConfig contains cron schedule settings (seconds precision, UTC)
type SchedulerConfig struct {
	NotifyWaitlist    string `yaml:"notify_waitlist" split_words:"true"`
	ExpireInvitations string `yaml:"expire_invitations" split_words:"true"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Email.Provider == "" {
		c.Email.Provider = "log"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "ClubLink"
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}

	// Waitlist defaults
	if c.Waitlist.AdmissionThreshold == 0 {
		c.Waitlist.AdmissionThreshold = utils.DefaultAdmissionThreshold
	}
	if c.Waitlist.InvitationTTL == 0 {
		c.Waitlist.InvitationTTL = 48 * time.Hour
	}
	if c.Waitlist.LockTTL == 0 {
		c.Waitlist.LockTTL = 30 * time.Minute
	}

	// Scheduler defaults
	if c.Scheduler.NotifyWaitlist == "" {
		c.Scheduler.NotifyWaitlist = "0 0 9 * * *" // Daily at 9 AM UTC
	}
	if c.Scheduler.ExpireInvitations == "" {
		c.Scheduler.ExpireInvitations = "0 0 8 * * *" // Daily at 8 AM UTC
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	// Email validation
	switch c.Email.Provider {
	case "sendgrid":
		if c.Email.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key is required")
		}
	case "smtp":
		if c.SMTP.Host == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.SMTP.Port)
		}
	case "log":
	default:
		return fmt.Errorf("unknown email provider: %q", c.Email.Provider)
	}
	if c.Email.Provider != "log" && c.Email.From == "" {
		return fmt.Errorf("email from address is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Waitlist validation
	if c.Waitlist.AdmissionThreshold <= 0 || c.Waitlist.AdmissionThreshold > 1 {
		return fmt.Errorf("admission threshold must be in (0, 1]: %v", c.Waitlist.AdmissionThreshold)
	}
	if c.Waitlist.FrontendBaseURL == "" {
		return fmt.Errorf("waitlist frontend base URL is required")
	}

	// Scheduler validation
	for name, spec := range map[string]string{
		"notify_waitlist":    c.Scheduler.NotifyWaitlist,
		"expire_invitations": c.Scheduler.ExpireInvitations,
	} {
		if _, err := CronParser.Parse(spec); err != nil {
			return fmt.Errorf("invalid %s schedule %q: %w", name, spec, err)
		}
	}

	return nil
}

// CronParser parses the six-field (seconds first) specs used by the scheduler.
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
