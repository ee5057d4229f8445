package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Platform PlatformConfig `yaml:"platform" json:"platform" jsonschema:"description=Graph API and webhook configuration"`
	Store    StoreConfig    `yaml:"store" json:"store" jsonschema:"description=Post rules store configuration"`
	History  HistoryConfig  `yaml:"history" json:"history" jsonschema:"description=Responded comments ledger configuration"`
	Dispatch DispatchConfig `yaml:"dispatch" json:"dispatch" jsonschema:"description=Outbound replies configuration"`
	Poll     PollConfig     `yaml:"poll" json:"poll" jsonschema:"description=Comment polling configuration"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// PlatformConfig holds Graph API credentials and webhook tokens
type PlatformConfig struct {
	GraphURL    string        `yaml:"graph_url" json:"graph_url" jsonschema:"default=https://graph.instagram.com/v23.0,description=Graph API base URL"`
	AccessToken string        `yaml:"access_token" json:"access_token" jsonschema:"required,description=Graph API access token (can use environment variable)"`
	UserID      string        `yaml:"user_id" json:"user_id" jsonschema:"description=Account id, comments from it are ignored"`
	Username    string        `yaml:"username" json:"username" jsonschema:"description=Account username, comments from it are ignored"`
	VerifyToken string        `yaml:"verify_token" json:"verify_token" jsonschema:"required,description=Webhook verification token"`
	AppSecret   string        `yaml:"app_secret" json:"app_secret" jsonschema:"description=App secret to check X-Hub-Signature-256, check disabled if empty"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Graph API request timeout"`
}

// StoreConfig holds rules store settings
type StoreConfig struct {
	Redis    RedisConfig `yaml:"redis" json:"redis" jsonschema:"description=Primary remote store, disabled if addr empty"`
	LocalDir string      `yaml:"local_dir" json:"local_dir" jsonschema:"default=var/posts,description=Local fallback directory"`
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr      string        `yaml:"addr" json:"addr" jsonschema:"description=Redis address host:port"`
	Password  string        `yaml:"password" json:"password" jsonschema:"description=Redis password"`
	DB        int           `yaml:"db" json:"db" jsonschema:"default=0,minimum=0,description=Redis database"`
	KeyPrefix string        `yaml:"key_prefix" json:"key_prefix" jsonschema:"default=autoreply:,description=Key prefix"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=3s,description=Redis operation timeout"`
}

// HistoryConfig holds ledger database settings
type HistoryConfig struct {
	DSN          string `yaml:"dsn" json:"dsn" jsonschema:"default=file:autoreply.db?mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,description=Maximum number of open connections"`
}

// DispatchConfig holds delays and limits of outbound calls
type DispatchConfig struct {
	ReplyDelay    time.Duration `yaml:"reply_delay" json:"reply_delay" jsonschema:"default=10s,description=Delay before a public reply"`
	DMDelay       time.Duration `yaml:"dm_delay" json:"dm_delay" jsonschema:"default=10s,description=Delay between reply and direct message"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,minimum=1,description=Maximum outbound calls in flight"`
	DrainTimeout  time.Duration `yaml:"drain_timeout" json:"drain_timeout" jsonschema:"default=30s,description=How long shutdown waits for pending replies"`
}

// PollConfig holds comment polling settings
type PollConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable periodic polling of latest posts"`
	Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=5m,description=Polling interval"`
	MaxPosts int           `yaml:"max_posts" json:"max_posts" jsonschema:"default=10,minimum=1,description=Number of latest posts to poll"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// platform
	if cfg.Platform.GraphURL == "" {
		cfg.Platform.GraphURL = "https://graph.instagram.com/v23.0"
	}
	if cfg.Platform.Timeout == 0 {
		cfg.Platform.Timeout = 30 * time.Second
	}

	// store
	if cfg.Store.LocalDir == "" {
		cfg.Store.LocalDir = "var/posts"
	}
	if cfg.Store.Redis.KeyPrefix == "" {
		cfg.Store.Redis.KeyPrefix = "autoreply:"
	}
	if cfg.Store.Redis.Timeout == 0 {
		cfg.Store.Redis.Timeout = 3 * time.Second
	}

	// history
	if cfg.History.DSN == "" {
		cfg.History.DSN = "file:autoreply.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	}
	if cfg.History.MaxOpenConns == 0 {
		cfg.History.MaxOpenConns = 4
	}

	// dispatch
	if cfg.Dispatch.ReplyDelay == 0 {
		cfg.Dispatch.ReplyDelay = 10 * time.Second
	}
	if cfg.Dispatch.DMDelay == 0 {
		cfg.Dispatch.DMDelay = 10 * time.Second
	}
	if cfg.Dispatch.MaxConcurrent == 0 {
		cfg.Dispatch.MaxConcurrent = 4
	}
	if cfg.Dispatch.DrainTimeout == 0 {
		cfg.Dispatch.DrainTimeout = 30 * time.Second
	}

	// poll
	if cfg.Poll.Interval == 0 {
		cfg.Poll.Interval = 5 * time.Minute
	}
	if cfg.Poll.MaxPosts == 0 {
		cfg.Poll.MaxPosts = 10
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate platform config
	if cfg.Platform.AccessToken == "" {
		return fmt.Errorf("platform.access_token is required")
	}
	if cfg.Platform.VerifyToken == "" {
		return fmt.Errorf("platform.verify_token is required")
	}
	if u, err := url.Parse(cfg.Platform.GraphURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("platform.graph_url must be an absolute url")
	}

	// validate dispatch config
	if cfg.Dispatch.ReplyDelay < 0 || cfg.Dispatch.DMDelay < 0 {
		return fmt.Errorf("dispatch delays must be non-negative")
	}
	if cfg.Dispatch.MaxConcurrent < 1 {
		return fmt.Errorf("dispatch.max_concurrent must be at least 1")
	}

	// validate poll config
	if cfg.Poll.Enabled && cfg.Poll.Interval < 10*time.Second {
		return fmt.Errorf("poll.interval must be at least 10 seconds")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetWebhookConfig returns webhook verification settings
func (c *Config) GetWebhookConfig() (verifyToken, appSecret string) {
	return c.Platform.VerifyToken, c.Platform.AppSecret
}
