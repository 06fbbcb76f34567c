package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/interval-coach/internal/generator"
	"github.com/lowaak/interval-coach/internal/i18n"
)

// AppDirName is the directory under $HOME holding config, logs and UI state
const AppDirName = ".interval-coach"

type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Workout   WorkoutConfig   `mapstructure:"workout"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`

	// ConfigFile is the file that was read, empty when none was found
	ConfigFile string `mapstructure:"-"`
}

type GeneratorConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WorkoutConfig struct {
	Language  string `mapstructure:"language"`
	Minutes   int    `mapstructure:"minutes"`
	Focus     string `mapstructure:"focus"`
	Equipment string `mapstructure:"equipment"`
	File      string `mapstructure:"file"`
}

type AudioConfig struct {
	Mute         bool   `mapstructure:"mute"`
	VoiceCommand string `mapstructure:"voice_command"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// Lang returns the configured UI language
func (c *Config) Lang() i18n.Lang {
	return i18n.ParseLang(c.Workout.Language)
}

// AppDir returns $HOME/.interval-coach, or the working directory when HOME is unknown
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(home, AppDirName)
}

// flagBindings maps command line flags to config keys
var flagBindings = map[string]string{
	"api-key":       "generator.api_key",
	"model":         "generator.model",
	"base-url":      "generator.base_url",
	"timeout":       "generator.timeout",
	"language":      "workout.language",
	"minutes":       "workout.minutes",
	"focus":         "workout.focus",
	"equipment":     "workout.equipment",
	"workout-file":  "workout.file",
	"mute":          "audio.mute",
	"voice-command": "audio.voice_command",
	"log-file":      "log.file",
	"serve":         "server.enabled",
	"listen":        "server.listen",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.model", generator.DefaultModel)
	v.SetDefault("generator.base_url", generator.DefaultBaseURL)
	v.SetDefault("generator.timeout", generator.DefaultTimeout)
	v.SetDefault("workout.language", string(i18n.EN))
	v.SetDefault("workout.minutes", 45)
	v.SetDefault("workout.focus", "")
	v.SetDefault("workout.equipment", "bodyweight")
	v.SetDefault("workout.file", "")
	v.SetDefault("audio.mute", false)
	v.SetDefault("audio.voice_command", "")
	v.SetDefault("log.file", filepath.Join(AppDir(), "interval-coach.log"))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.listen", "127.0.0.1:8080")
}

// NewFlagSet declares every command line flag
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("api-key", "", "API key for the chat completions endpoint")
	fs.String("model", generator.DefaultModel, "model used to generate workouts")
	fs.String("base-url", generator.DefaultBaseURL, "OpenAI-compatible API base URL")
	fs.Duration("timeout", generator.DefaultTimeout, "generation request timeout")
	fs.StringP("language", "l", string(i18n.EN), "UI language (en, zh, zh-TW, ...)")
	fs.IntP("minutes", "t", 45, "target workout length in minutes")
	fs.String("focus", "", "goal or problem to train for")
	fs.String("equipment", "bodyweight", "available equipment")
	fs.StringP("workout-file", "f", "", "load a workout from a JSON or YAML file instead of generating one")
	fs.Bool("mute", false, "start the player muted")
	fs.String("voice-command", "", "speech command for announcements, e.g. \"espeak -s 160\"")
	fs.String("log-file", "", "log file path")
	fs.Bool("serve", false, "run the HTTP API instead of the terminal UI")
	fs.String("listen", "127.0.0.1:8080", "HTTP API listen address")
	return fs
}

// Load parses args and resolves configuration with precedence
// flag > environment > config file > default.
//
// Environment variables use the COACH_ prefix with underscores for nesting,
// e.g. COACH_WORKOUT_MINUTES. The API key is also read from COACH_API_KEY
// and OPENAI_API_KEY.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("interval-coach")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return LoadFlags(fs)
}

// LoadFlags resolves configuration from an already parsed flag set
func LoadFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for flagName, key := range flagBindings {
		if f := fs.Lookup(flagName); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", flagName, err)
			}
		}
	}

	v.SetEnvPrefix("COACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("generator.api_key", "COACH_GENERATOR_API_KEY", "COACH_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}

	configFile, _ := fs.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(AppDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Workout.Minutes <= 0 {
		return fmt.Errorf("workout.minutes must be positive, got %d", c.Workout.Minutes)
	}
	if c.Generator.Model == "" {
		return fmt.Errorf("generator.model is required")
	}
	if c.Generator.BaseURL == "" {
		return fmt.Errorf("generator.base_url is required")
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("generator.timeout must be positive")
	}
	if c.Server.Enabled && c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required when serving")
	}
	if c.Log.File == "" {
		return fmt.Errorf("log.file is required")
	}
	c.Workout.Language = string(c.Lang())
	return nil
}
