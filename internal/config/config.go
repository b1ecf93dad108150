package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

const EnvPrefix = "MINEFIELD"

var ErrInvalid = errors.New("invalid config")

type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

type Config struct {
	Rows           int      `mapstructure:"rows"`
	Cols           int      `mapstructure:"cols"`
	Mines          int      `mapstructure:"mines"`
	Placement      string   `mapstructure:"placement"`
	Seed           uint64   `mapstructure:"seed"`
	Addr           string   `mapstructure:"addr"`
	Development    bool     `mapstructure:"development"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Log            Log      `mapstructure:"log"`
}

// Default is a beginner board served on :8080.
func Default() *Config {
	return &Config{
		Rows:      9,
		Cols:      9,
		Mines:     10,
		Placement: mines.ExcludeCross.String(),
		Addr:      ":8080",
		Log: Log{
			Level:      logrus.InfoLevel.String(),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("rows", c.Rows)
	v.SetDefault("cols", c.Cols)
	v.SetDefault("mines", c.Mines)
	v.SetDefault("placement", c.Placement)
	v.SetDefault("seed", c.Seed)
	v.SetDefault("addr", c.Addr)
	v.SetDefault("development", c.Development)
	v.SetDefault("allowed_origins", c.AllowedOrigins)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.file", c.Log.File)
	v.SetDefault("log.max_size", c.Log.MaxSize)
	v.SetDefault("log.max_backups", c.Log.MaxBackups)
	v.SetDefault("log.max_age", c.Log.MaxAge)
}

// Load reads the config. Later sources override earlier ones:
//  1. Default() values
//  2. the file named by the "config" key or MINEFIELD_CONFIG, if any
//  3. MINEFIELD_* environment variables (log.level is MINEFIELD_LOG_LEVEL)
//  4. flags already bound to v
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var c Config
	err := v.Unmarshal(&c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// GameParams returns the board the config describes.
func (c *Config) GameParams() (session.Params, error) {
	placement, ok := mines.ParsePlacement(c.Placement)
	if !ok {
		return session.Params{}, fmt.Errorf("%w: unknown placement %q", ErrInvalid, c.Placement)
	}
	params := session.Params{
		Rows:      c.Rows,
		Cols:      c.Cols,
		Mines:     c.Mines,
		Placement: placement,
	}
	if err := params.Validate(); err != nil {
		return session.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return params, nil
}

func (c *Config) Validate() error {
	if _, err := c.GameParams(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalid)
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalid)
	}
	return nil
}

func (c *Config) Fields() logrus.Fields {
	return map[string]any{
		"rows":            c.Rows,
		"cols":            c.Cols,
		"mines":           c.Mines,
		"placement":       c.Placement,
		"seed":            c.Seed,
		"addr":            c.Addr,
		"development":     c.Development,
		"allowed_origins": c.AllowedOrigins,
		"log_level":       c.Log.Level,
		"log_file":        c.Log.File,
	}
}
