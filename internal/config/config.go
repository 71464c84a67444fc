// Package config loads portfolio settings from flags, environment variables,
// an optional YAML file and built-in defaults, in that order of precedence.
//
// Every key can be set with a PORTFOLIO_ prefixed variable, dots replaced by
// underscores (PORTFOLIO_SERVER_PORT, PORTFOLIO_MAIL_SMTP_HOST, ...). The
// older unprefixed names PORT, SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and
// TO_EMAIL are still honoured.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "PORTFOLIO"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Owner   OwnerConfig   `mapstructure:"owner"`
	Contact ContactConfig `mapstructure:"contact"`
	Mail    MailConfig    `mapstructure:"mail"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	AssetsDir string `mapstructure:"assets_dir"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OwnerConfig is who receives contact messages.
type OwnerConfig struct {
	Email string `mapstructure:"email"`
}

// ContactConfig drives the contact command's client.
type ContactConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MailConfig struct {
	// Provider is smtp, resend or log. Empty picks one from the
	// credentials that are present.
	Provider string       `mapstructure:"provider"`
	SMTP     SMTPConfig   `mapstructure:"smtp"`
	Resend   ResendConfig `mapstructure:"resend"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type ResendConfig struct {
	APIKey      string `mapstructure:"api_key"`
	SenderEmail string `mapstructure:"from_email"`
	SenderName  string `mapstructure:"from_name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

var legacyEnv = map[string]string{
	"server.port":        "PORT",
	"owner.email":        "TO_EMAIL",
	"mail.smtp.host":     "SMTP_HOST",
	"mail.smtp.port":     "SMTP_PORT",
	"mail.smtp.user":     "SMTP_USER",
	"mail.smtp.password": "SMTP_PASS",
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.assets_dir", "./static")
	v.SetDefault("server.mode", "release")

	v.SetDefault("owner.email", "vallamsettyashok913@gmail.com")

	v.SetDefault("contact.base_url", "http://localhost:8080")
	v.SetDefault("contact.timeout", 0)

	v.SetDefault("mail.provider", "")
	v.SetDefault("mail.smtp.host", "smtp.gmail.com")
	v.SetDefault("mail.smtp.port", 587)
	v.SetDefault("mail.smtp.user", "")
	v.SetDefault("mail.smtp.password", "")
	v.SetDefault("mail.resend.api_key", "")
	v.SetDefault("mail.resend.from_email", "")
	v.SetDefault("mail.resend.from_name", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, legacy)
	}
}

// Load reads the configuration held by v. SetDefaults must have been called.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: server.port %d out of range", c.Server.Port))
	}
	if c.Owner.Email == "" {
		errs = append(errs, errors.New("config: owner.email is required"))
	} else if strings.ContainsAny(c.Owner.Email, "?&# \t\r\n") {
		errs = append(errs, fmt.Errorf("config: owner.email %q must be a bare address", c.Owner.Email))
	}
	if c.Contact.Timeout < 0 {
		errs = append(errs, errors.New("config: contact.timeout must not be negative"))
	}
	switch c.Mail.Provider {
	case "", "smtp", "resend", "log":
	default:
		errs = append(errs, fmt.Errorf("config: unknown mail.provider %q", c.Mail.Provider))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log.format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
