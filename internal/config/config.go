// Package config loads mathblat settings from a YAML file, a .env file and
// MATHBLAT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the TCP port a host listens on.
const DefaultPort = 12345

// Transport kinds.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "ws"
)

// Score backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the effective application configuration.
type Config struct {
	Network Network `yaml:"network"`
	Game    Game    `yaml:"game"`
	Storage Storage `yaml:"storage"`
	Redis   Redis   `yaml:"redis"`
	Log     Log     `yaml:"log"`
}

type Network struct {
	Port            int           `yaml:"port"`
	Transport       string        `yaml:"transport"`
	WSPath          string        `yaml:"ws_path"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	ConnectAttempts int           `yaml:"connect_attempts"`
}

type Game struct {
	RoundSeconds int           `yaml:"round_seconds"`
	ResolveDelay time.Duration `yaml:"resolve_delay"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Difficulty   string        `yaml:"difficulty"`
	PlayerName   string        `yaml:"player_name"`
}

type Storage struct {
	DBPath        string `yaml:"db_path"`
	ScoresBackend string `yaml:"scores_backend"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Network: Network{
			Port:            DefaultPort,
			Transport:       TransportTCP,
			WSPath:          "/duel",
			ConnectTimeout:  10 * time.Second,
			ConnectAttempts: 3,
		},
		Game: Game{
			RoundSeconds: 15,
			ResolveDelay: time.Second,
			TickInterval: 100 * time.Millisecond,
			Difficulty:   "EASY",
			PlayerName:   "Player",
		},
		Storage: Storage{
			ScoresBackend: BackendSQLite,
		},
		Redis: Redis{
			Addr: "localhost:6379",
			Key:  "mathblat:highscores",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location used when none is given:
// $MATHBLAT_CONFIG, else ~/.mathblat/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("MATHBLAT_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".mathblat", "config.yaml"), nil
}

// Load builds the configuration. A missing file at path is not an error.
// Values from the file are layered over Default() and env overrides are
// applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from .env files without overriding the ones
// already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Network.Port = getEnvInt("MATHBLAT_PORT", cfg.Network.Port)
	cfg.Network.Transport = getEnv("MATHBLAT_TRANSPORT", cfg.Network.Transport)
	cfg.Storage.DBPath = getEnv("MATHBLAT_DB", cfg.Storage.DBPath)
	cfg.Log.Level = getEnv("MATHBLAT_LOG_LEVEL", cfg.Log.Level)
	if addr := os.Getenv("MATHBLAT_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Storage.ScoresBackend = BackendRedis
	}
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	if c.Network.Port <= 0 || c.Network.Port > 65535 {
		return fmt.Errorf("network.port %d out of range", c.Network.Port)
	}
	switch c.Network.Transport {
	case TransportTCP, TransportWebSocket:
	default:
		return fmt.Errorf("network.transport %q: want %q or %q", c.Network.Transport, TransportTCP, TransportWebSocket)
	}
	switch c.Storage.ScoresBackend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("storage.scores_backend %q: want %q or %q", c.Storage.ScoresBackend, BackendSQLite, BackendRedis)
	}
	if c.Game.RoundSeconds <= 0 {
		return fmt.Errorf("game.round_seconds must be positive")
	}
	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("game.tick_interval must be positive")
	}
	if c.Game.ResolveDelay < 0 {
		return fmt.Errorf("game.resolve_delay must not be negative")
	}
	return nil
}

// ListenAddr is the host bind address.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Network.Port)
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
