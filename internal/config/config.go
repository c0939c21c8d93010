package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	App       AppConfig
	Logging   LoggingConfig
	Numbering NumberingConfig
	Scheduler SchedulerConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Env string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// NumberingConfig controls the human-readable display numbers. Only the
// prefixes are configurable; uniqueness comes from the sequence counters.
type NumberingConfig struct {
	LoanPrefix       string
	CollectionPrefix string
	BorrowerPrefix   string
	StaffPrefix      string
	AgentPrefix      string
}

type SchedulerConfig struct {
	StatsCron string
	AuditCron string
	Timezone  string
}

type SeedConfig struct {
	DemoData bool
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment only")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	config := Default()
	config.App.Env = v.GetString("ENV")
	config.Logging = LoggingConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}
	config.Numbering = NumberingConfig{
		LoanPrefix:       v.GetString("LOAN_NUMBER_PREFIX"),
		CollectionPrefix: v.GetString("COLLECTION_NUMBER_PREFIX"),
		BorrowerPrefix:   v.GetString("BORROWER_CODE_PREFIX"),
		StaffPrefix:      v.GetString("STAFF_CODE_PREFIX"),
		AgentPrefix:      v.GetString("AGENT_CODE_PREFIX"),
	}
	config.Scheduler = SchedulerConfig{
		StatsCron: v.GetString("STATS_CRON"),
		AuditCron: v.GetString("AUDIT_CRON"),
		Timezone:  v.GetString("SCHEDULER_TIMEZONE"),
	}
	config.Seed.DemoData = v.GetBool("SEED_DEMO_DATA")

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("ENV", d.App.Env)
	v.SetDefault("LOG_LEVEL", d.Logging.Level)
	v.SetDefault("LOG_FORMAT", d.Logging.Format)
	v.SetDefault("LOAN_NUMBER_PREFIX", d.Numbering.LoanPrefix)
	v.SetDefault("COLLECTION_NUMBER_PREFIX", d.Numbering.CollectionPrefix)
	v.SetDefault("BORROWER_CODE_PREFIX", d.Numbering.BorrowerPrefix)
	v.SetDefault("STAFF_CODE_PREFIX", d.Numbering.StaffPrefix)
	v.SetDefault("AGENT_CODE_PREFIX", d.Numbering.AgentPrefix)
	v.SetDefault("STATS_CRON", d.Scheduler.StatsCron)
	v.SetDefault("AUDIT_CRON", d.Scheduler.AuditCron)
	v.SetDefault("SCHEDULER_TIMEZONE", d.Scheduler.Timezone)
	v.SetDefault("SEED_DEMO_DATA", d.Seed.DemoData)
}

// Default returns the built-in configuration, also used by tests.
func Default() *Config {
	return &Config{
		App: AppConfig{Env: "development"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Numbering: NumberingConfig{
			LoanPrefix:       "LN",
			CollectionPrefix: "COL",
			BorrowerPrefix:   "BOR",
			StaffPrefix:      "EMP",
			AgentPrefix:      "AGT",
		},
		Scheduler: SchedulerConfig{
			StatsCron: "0 0 0 * * *",
			AuditCron: "0 30 0 * * *",
			Timezone:  "Asia/Kolkata",
		},
		Seed: SeedConfig{DemoData: true},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL must be a valid level: %w", err)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Logging.Format)
	}

	if c.Numbering.LoanPrefix == "" || c.Numbering.CollectionPrefix == "" {
		return fmt.Errorf("LOAN_NUMBER_PREFIX and COLLECTION_NUMBER_PREFIX are required")
	}

	// Validate scheduler specs
	parser := cron.NewParser(cronFields)
	if _, err := parser.Parse(c.Scheduler.StatsCron); err != nil {
		return fmt.Errorf("STATS_CRON must be a valid cron expression: %w", err)
	}
	if _, err := parser.Parse(c.Scheduler.AuditCron); err != nil {
		return fmt.Errorf("AUDIT_CRON must be a valid cron expression: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// cronFields matches cron.WithSeconds().
const cronFields = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

// GetLocation returns the scheduler timezone
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewLogger builds the process logger from the logging section.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(c.Logging.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
