package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppName    = "Scireda"
	AppVersion = "1.0.0"
)

// EnvPrefix is prepended to every environment variable, e.g. SCIREDA_ADDR.
const EnvPrefix = "SCIREDA"

type Config struct {
	Addr                 string        `mapstructure:"addr"`
	DataDir              string        `mapstructure:"data_dir"`
	DBPath               string        `mapstructure:"db_path"`
	StaticDir            string        `mapstructure:"static_dir"`
	LogLevel             string        `mapstructure:"log_level"`
	LogFormat            string        `mapstructure:"log_format"`
	JWTSecret            string        `mapstructure:"jwt_secret"`
	TokenTTL             time.Duration `mapstructure:"token_ttl"`
	TokenCleanupInterval time.Duration `mapstructure:"token_cleanup_interval"`
	CORSOrigins          []string      `mapstructure:"cors_origins"`
	RateLimitRPS         float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst       int           `mapstructure:"rate_limit_burst"`
	NodeID               int64         `mapstructure:"node_id"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("db_path", "")
	v.SetDefault("static_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("token_cleanup_interval", time.Hour)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("rate_limit_rps", 20.0)
	v.SetDefault("rate_limit_burst", 40)
	v.SetDefault("node_id", 1)
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet(strings.ToLower(AppName), pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, toml or json)")
	fs.String("addr", "", "listen address")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	return fs
}

// Load reads configuration from (in increasing priority) defaults, an optional
// config file, an optional .env file, SCIREDA_* environment variables and flags.
func Load(args []string) (Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if f := fs.Lookup("addr"); f != nil && f.Changed {
		v.Set("addr", f.Value.String())
	}
	if f := fs.Lookup("log-level"); f != nil && f.Changed {
		v.Set("log_level", f.Value.String())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// Env values for slices arrive as a single comma separated string.
	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = splitList(cfg.CORSOrigins[0])
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "scireda.db")
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = detectStaticDir()
	}
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	cfg.DataDir = filepath.Clean(cfg.DataDir)
	cfg.StaticDir = filepath.Clean(cfg.StaticDir)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if c.TokenCleanupInterval <= 0 {
		return errors.New("token_cleanup_interval must be positive")
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("node_id must be between 0 and 1023, got %d", c.NodeID)
	}
	if c.RateLimitRPS < 0 {
		return errors.New("rate_limit_rps must not be negative")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func detectStaticDir() string {
	candidates := []string{
		"./ui/dist",
		"../ui/dist",
	}
	for _, candidate := range candidates {
		if fileExists(filepath.Join(candidate, "index.html")) {
			return candidate
		}
	}
	return "./ui/dist"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
