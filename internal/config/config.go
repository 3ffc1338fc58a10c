package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Probe Probe `yaml:"probe"`
	API   API   `yaml:"api"`
	Log   Log   `yaml:"log"`
}

type Probe struct {
	URL         string        `yaml:"url" env:"PROBE_URL"`                 // overrides host/port/path when set
	Host        string        `yaml:"host" env:"PROBE_HOST" env-default:"localhost"`
	Port        int           `yaml:"port" env:"PROBE_PORT" env-default:"8078"`
	Path        string        `yaml:"path" env:"PROBE_PATH" env-default:"/user/43"`
	Timeout     time.Duration `yaml:"timeout" env:"PROBE_TIMEOUT" env-default:"0s"` // 0 means no client timeout
	DiagnoseDNS bool          `yaml:"diagnose_dns" env:"PROBE_DIAGNOSE_DNS" env-default:"true"`
}

type API struct {
	Addr        string `yaml:"addr" env:"API_ADDR" env-default:"127.0.0.1:8078"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"` // empty means in-memory store
}

type Log struct {
	Dir   string `yaml:"dir" env:"LOG_DIR" env-default:"logs"`
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// FromEnv loads configuration from the environment. When CONFIG_PATH
// points at a YAML file it is read first and the environment overrides it.
func FromEnv() (Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if cfg.Probe.URL == "" && (cfg.Probe.Port < 1 || cfg.Probe.Port > 65535) {
		return Config{}, fmt.Errorf("invalid PROBE_PORT %d", cfg.Probe.Port)
	}
	if cfg.Probe.Timeout < 0 {
		return Config{}, fmt.Errorf("invalid PROBE_TIMEOUT %s", cfg.Probe.Timeout)
	}
	return cfg, nil
}

// TargetURL returns the URL the probe posts to.
func (p Probe) TargetURL() string {
	if p.URL != "" {
		return p.URL
	}
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   p.Path,
	}
	return u.String()
}
