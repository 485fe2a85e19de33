package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	SecretKey string `mapstructure:"secret_key"`

	// Optional HTTP settings
	HTTPHost string `mapstructure:"http_host"`
	HTTPPort int    `mapstructure:"http_port"`
	// BaseURL is the externally visible origin used in reset links.
	BaseURL string `mapstructure:"base_url"`

	// Storage paths
	DBPath     string `mapstructure:"db_path"`
	PictureDir string `mapstructure:"picture_dir"`

	// Optional outbound mail settings. With an empty SMTPHost, reset
	// mail is logged instead of sent.
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	MailFrom     string `mapstructure:"mail_from"`

	ConfigPath string
}

const (
	DefaultConfigPath = "/etc/quill/config.yml"
	DefaultHTTPHost   = "0.0.0.0"
	DefaultHTTPPort   = 8330
	DefaultDBPath     = "/var/lib/quill/quill.sqlite3"
	DefaultPictureDir = "/var/lib/quill/profile_pics"
	DefaultSMTPPort   = 587
	DefaultMailFrom   = "noreply@demo.com"
)

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("http_host", DefaultHTTPHost)
	viper.SetDefault("http_port", DefaultHTTPPort)
	viper.SetDefault("db_path", DefaultDBPath)
	viper.SetDefault("picture_dir", DefaultPictureDir)
	viper.SetDefault("smtp_port", DefaultSMTPPort)
	viper.SetDefault("mail_from", DefaultMailFrom)

	// Allow environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvPrefix("QUILL")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("secret_key is required")
	}

	if c.SMTPHost != "" && c.MailFrom == "" {
		return fmt.Errorf("mail_from is required when smtp_host is set")
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("QUILL_DEV_MODE") == "1"
}
