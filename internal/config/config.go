package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ViteConfig describes where the Vite build lives and how templates reach it.
// It is built once at startup and shared by pointer; nothing downstream reads
// the process environment.
type ViteConfig struct {
	AssetsPath      string `envconfig:"VITE_ASSETS_PATH" default:"dist"`
	ManifestPath    string `envconfig:"VITE_MANIFEST_PATH" default:"dist/.vite/manifest.json"`
	DevServerURL    string `envconfig:"VITE_DEV_SERVER_URL" default:"http://localhost:5173"`
	StaticURLPrefix string `envconfig:"VITE_STATIC_URL_PREFIX" default:"/static"`
	AutoDetectDev   bool   `envconfig:"VITE_AUTO_DETECT_DEV" default:"true"`
	ForceDevMode    *bool  `envconfig:"VITE_FORCE_DEV_MODE"`
	BasePath        string `envconfig:"VITE_BASE_PATH"`

	// Env is the dev-mode signal: "development" selects the dev server.
	Env     string `envconfig:"ENV" default:"development"`
	DevHost string `envconfig:"VITE_HOST"`
	DevPort string `envconfig:"VITE_PORT"`
}

// DefaultViteConfig returns the built-in defaults with BasePath set to the
// working directory.
func DefaultViteConfig() *ViteConfig {
	cfg := &ViteConfig{
		AssetsPath:      DefaultAssetsPath,
		ManifestPath:    DefaultManifestPath,
		DevServerURL:    DefaultDevServerURL,
		StaticURLPrefix: DefaultStaticURLPrefix,
		AutoDetectDev:   true,
		Env:             EnvDevelopment,
	}
	cfg.Normalize()
	return cfg
}

// Normalize fills BasePath with the working directory when it is empty.
func (c *ViteConfig) Normalize() {
	if c.BasePath != "" {
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		slog.Warn("failed to resolve working directory, using relative paths", "error", err)
		c.BasePath = "."
		return
	}
	c.BasePath = wd
}

// IsDevMode reports whether templates should point at the dev server.
// ForceDevMode wins over the environment signal when set.
func (c *ViteConfig) IsDevMode() bool {
	if c.ForceDevMode != nil {
		return *c.ForceDevMode
	}
	if c.AutoDetectDev {
		return c.Env == EnvDevelopment
	}
	return false
}

// FullAssetsPath returns AssetsPath resolved against BasePath.
func (c *ViteConfig) FullAssetsPath() string {
	return c.resolve(c.AssetsPath)
}

// FullManifestPath returns ManifestPath resolved against BasePath.
func (c *ViteConfig) FullManifestPath() string {
	return c.resolve(c.ManifestPath)
}

func (c *ViteConfig) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.BasePath, p)
}

// DevServerHost returns the dev server base URL without a trailing slash.
// VITE_HOST and VITE_PORT each override their part of DevServerURL.
func (c *ViteConfig) DevServerHost() string {
	if c.DevHost != "" {
		port := c.DevPort
		if port == "" {
			port = DefaultDevPort
		}
		return fmt.Sprintf("http://%s:%s", c.DevHost, port)
	}

	base := strings.TrimRight(c.DevServerURL, "/")
	if c.DevPort == "" {
		return base
	}

	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		slog.Warn("cannot apply VITE_PORT to dev server URL", "url", c.DevServerURL, "error", err)
		return base
	}
	u.Host = net.JoinHostPort(u.Hostname(), c.DevPort)
	return strings.TrimRight(u.String(), "/")
}

// StaticPrefix returns StaticURLPrefix without a trailing slash.
func (c *ViteConfig) StaticPrefix() string {
	return strings.TrimRight(c.StaticURLPrefix, "/")
}

// Validate checks the Vite settings for correctness.
func (c *ViteConfig) Validate() error {
	if c.AssetsPath == "" {
		return fmt.Errorf("%w: assets path must not be empty", ErrInvalidConfig)
	}
	if c.ManifestPath == "" {
		return fmt.Errorf("%w: manifest path must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.DevServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: dev server URL must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.DevServerURL)
	}
	if !strings.HasPrefix(c.StaticURLPrefix, "/") {
		return fmt.Errorf("%w: static URL prefix must start with \"/\", got %q", ErrInvalidConfig, c.StaticURLPrefix)
	}
	return nil
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ViteConfig

	Host         string   `envconfig:"APP_HOST" default:"127.0.0.1"`
	Port         int      `envconfig:"APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"APP_LOG_LEVEL" default:"info"`
	LogDir       string   `envconfig:"APP_LOG_DIR" default:"./logs"`
	TemplatesDir string   `envconfig:"APP_TEMPLATES_DIR"`
	RateLimitRPS int      `envconfig:"APP_RATE_LIMIT_RPS" default:"0"`
	CORSOrigins  []string `envconfig:"APP_CORS_ORIGINS"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if err := c.ViteConfig.Validate(); err != nil {
		return err
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("%w: rate limit must be >= 0, got %d", ErrInvalidConfig, c.RateLimitRPS)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
