package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "PINRESOLVER_CONFIG"

// Config holds high-level settings required across the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Fetcher FetcherConfig `yaml:"fetcher"`
	Proxy   ProxyConfig   `yaml:"proxy"`
	Hosts   HostsConfig   `yaml:"hosts"`
}

// ServerConfig describes the HTTP listener and its optional surfaces.
type ServerConfig struct {
	Address         string        `yaml:"address" env:"PINRESOLVER_ADDR"`
	StaticDir       string        `yaml:"staticDir" env:"PINRESOLVER_STATIC_DIR"`
	BodyLimit       string        `yaml:"bodyLimit" env:"PINRESOLVER_BODY_LIMIT"`
	EnableMCP       bool          `yaml:"enableMcp" env:"PINRESOLVER_ENABLE_MCP"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"PINRESOLVER_SHUTDOWN_TIMEOUT"`
}

// LoggingConfig selects verbosity and output format (auto, text, json, tint).
type LoggingConfig struct {
	Level  string `yaml:"level" env:"PINRESOLVER_LOG_LEVEL"`
	Format string `yaml:"format" env:"PINRESOLVER_LOG_FORMAT"`
}

// FetcherConfig controls outbound page requests.
type FetcherConfig struct {
	Timeout        time.Duration `yaml:"timeout" env:"PINRESOLVER_FETCH_TIMEOUT"`
	MaxRedirects   int           `yaml:"maxRedirects" env:"PINRESOLVER_FETCH_MAX_REDIRECTS"`
	MaxBodyBytes   int64         `yaml:"maxBodyBytes" env:"PINRESOLVER_FETCH_MAX_BYTES"`
	UserAgent      string        `yaml:"userAgent" env:"PINRESOLVER_USER_AGENT"`
	AcceptLanguage string        `yaml:"acceptLanguage" env:"PINRESOLVER_ACCEPT_LANGUAGE"`
}

// ProxyConfig controls outbound asset downloads.
type ProxyConfig struct {
	Timeout      time.Duration `yaml:"timeout" env:"PINRESOLVER_PROXY_TIMEOUT"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes" env:"PINRESOLVER_PROXY_MAX_BYTES"`
}

// HostsConfig holds the allow-lists for page and asset URLs.
//
// Resolve entries are hostname substrings; with Strict set, ResolvePatterns
// globs must match the whole hostname instead. Download globs gate the asset
// proxy; an empty list admits any host.
type HostsConfig struct {
	Resolve         []string `yaml:"resolve" env:"PINRESOLVER_RESOLVE_HOSTS"`
	Strict          bool     `yaml:"strict" env:"PINRESOLVER_STRICT_HOSTS"`
	ResolvePatterns []string `yaml:"resolvePatterns" env:"PINRESOLVER_RESOLVE_PATTERNS"`
	Download        []string `yaml:"download" env:"PINRESOLVER_DOWNLOAD_HOSTS"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = Default()
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Printf("config: cannot apply environment: %v", err)
	}

	cfg.fillZeroes()
	return cfg
}

// fillZeroes restores defaults for values a file or the environment blanked out.
func (c *Config) fillZeroes() {
	def := Default()
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.BodyLimit == "" {
		c.Server.BodyLimit = def.Server.BodyLimit
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Fetcher.Timeout <= 0 {
		c.Fetcher.Timeout = def.Fetcher.Timeout
	}
	if c.Fetcher.MaxRedirects <= 0 {
		c.Fetcher.MaxRedirects = def.Fetcher.MaxRedirects
	}
	if c.Proxy.Timeout <= 0 {
		c.Proxy.Timeout = def.Proxy.Timeout
	}
	if len(c.Hosts.Resolve) == 0 {
		c.Hosts.Resolve = def.Hosts.Resolve
	}
	if len(c.Hosts.ResolvePatterns) == 0 {
		c.Hosts.ResolvePatterns = def.Hosts.ResolvePatterns
	}
}

// pinterestDomains are the registrable domains pins are served from.
var pinterestDomains = []string{
	"pinterest.com", "pinterest.ca", "pinterest.co.uk", "pinterest.ie", "pinterest.de",
	"pinterest.at", "pinterest.ch", "pinterest.fr", "pinterest.es", "pinterest.it",
	"pinterest.pt", "pinterest.se", "pinterest.dk", "pinterest.nz", "pinterest.com.au",
	"pinterest.com.mx", "pinterest.cl", "pinterest.jp", "pinterest.co.kr", "pinterest.ph",
}

// defaultResolvePatterns admits each Pinterest domain, its direct subdomains
// and the pin.it shortener.
func defaultResolvePatterns() []string {
	patterns := make([]string, 0, 2*len(pinterestDomains)+1)
	for _, d := range pinterestDomains {
		patterns = append(patterns, d, "*."+d)
	}
	return append(patterns, "pin.it")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":3000",
			BodyLimit:       "64K",
			EnableMCP:       true,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "auto"},
		Fetcher: FetcherConfig{
			Timeout:      10 * time.Second,
			MaxRedirects: 10,
			MaxBodyBytes: 8 << 20,
		},
		Proxy: ProxyConfig{
			Timeout:      60 * time.Second,
			MaxBodyBytes: 256 << 20,
		},
		Hosts: HostsConfig{
			Resolve:         []string{"pinterest.com", "pin.it"},
			ResolvePatterns: defaultResolvePatterns(),
			Download:        []string{"pinimg.com", "*.pinimg.com", "pinterest.com", "*.pinterest.com"},
		},
	}
}
