package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "GRACED"

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

type WebPush struct {
	Subject           string
	PublicKey         string
	PrivateKey        string
	SubscriptionsFile string
}

type Config struct {
	DataDir              string
	Store                string
	Timezone             string
	LogLevel             string
	CatalogPath          string
	DesktopNotifications bool
	SchedulerBuffer      int
	PollInterval         time.Duration
	WebPush              WebPush
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "graced")
	}
	return ".graced"
}

func Default() Config {
	return Config{
		DataDir:              defaultDataDir(),
		Store:                StoreSQLite,
		LogLevel:             "info",
		DesktopNotifications: true,
		SchedulerBuffer:      64,
		PollInterval:         30 * time.Second,
	}
}

func newViper(base Config) *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", base.DataDir)
	v.SetDefault("store", base.Store)
	v.SetDefault("timezone", base.Timezone)
	v.SetDefault("log_level", base.LogLevel)
	v.SetDefault("catalog_path", base.CatalogPath)
	v.SetDefault("desktop_notifications", base.DesktopNotifications)
	v.SetDefault("scheduler_buffer", base.SchedulerBuffer)
	v.SetDefault("poll_interval", base.PollInterval)
	v.SetDefault("webpush.subject", base.WebPush.Subject)
	v.SetDefault("webpush.public_key", base.WebPush.PublicKey)
	v.SetDefault("webpush.private_key", base.WebPush.PrivateKey)
	v.SetDefault("webpush.subscriptions_file", base.WebPush.SubscriptionsFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load layers defaults, an optional config file and GRACED_* environment
// variables. With an empty path it looks for config.{yaml,json,toml} in the
// user config dir and tolerates its absence.
func Load(path string) (Config, error) {
	base := Default()
	v := newViper(base)
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "graced"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		DataDir:              v.GetString("data_dir"),
		Store:                strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		Timezone:             strings.TrimSpace(v.GetString("timezone")),
		LogLevel:             v.GetString("log_level"),
		CatalogPath:          v.GetString("catalog_path"),
		DesktopNotifications: v.GetBool("desktop_notifications"),
		SchedulerBuffer:      v.GetInt("scheduler_buffer"),
		PollInterval:         v.GetDuration("poll_interval"),
		WebPush: WebPush{
			Subject:           v.GetString("webpush.subject"),
			PublicKey:         v.GetString("webpush.public_key"),
			PrivateKey:        v.GetString("webpush.private_key"),
			SubscriptionsFile: v.GetString("webpush.subscriptions_file"),
		},
	}
	if cfg.SchedulerBuffer <= 0 {
		cfg.SchedulerBuffer = base.SchedulerBuffer
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = base.PollInterval
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is required")
	}
	switch c.Store {
	case StoreSQLite, StoreFile:
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty means the process local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "graced.db")
}

func (c Config) StateDir() string {
	return filepath.Join(c.DataDir, "state")
}
