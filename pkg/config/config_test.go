package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_IG_TOKEN", "secret-token")
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
platform:
  access_token: ${TEST_IG_TOKEN}
  verify_token: verify-me
  app_secret: app-secret
  user_id: "1784"
  username: shop
store:
  redis:
    addr: localhost:6379
    db: 2
    key_prefix: "ig:"
  local_dir: /tmp/posts
history:
  dsn: file:/tmp/history.db
dispatch:
  reply_delay: 15s
  dm_delay: 5s
  max_concurrent: 2
poll:
  enabled: true
  interval: 1m
  max_posts: 3
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "secret-token", cfg.Platform.AccessToken)
		assert.Equal(t, "verify-me", cfg.Platform.VerifyToken)
		assert.Equal(t, "1784", cfg.Platform.UserID)
		assert.Equal(t, "shop", cfg.Platform.Username)
		assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
		assert.Equal(t, 2, cfg.Store.Redis.DB)
		assert.Equal(t, "ig:", cfg.Store.Redis.KeyPrefix)
		assert.Equal(t, "/tmp/posts", cfg.Store.LocalDir)
		assert.Equal(t, "file:/tmp/history.db", cfg.History.DSN)
		assert.Equal(t, 15*time.Second, cfg.Dispatch.ReplyDelay)
		assert.Equal(t, 5*time.Second, cfg.Dispatch.DMDelay)
		assert.Equal(t, 2, cfg.Dispatch.MaxConcurrent)
		assert.True(t, cfg.Poll.Enabled)
		assert.Equal(t, time.Minute, cfg.Poll.Interval)
		assert.Equal(t, 3, cfg.Poll.MaxPosts)

		verify, secret := cfg.GetWebhookConfig()
		assert.Equal(t, "verify-me", verify)
		assert.Equal(t, "app-secret", secret)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
platform:
  access_token: tok
  verify_token: verify
`))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://graph.instagram.com/v23.0", cfg.Platform.GraphURL)
		assert.Equal(t, 30*time.Second, cfg.Platform.Timeout)
		assert.Empty(t, cfg.Store.Redis.Addr, "remote store off by default")
		assert.Equal(t, "autoreply:", cfg.Store.Redis.KeyPrefix)
		assert.Equal(t, 3*time.Second, cfg.Store.Redis.Timeout)
		assert.Equal(t, "var/posts", cfg.Store.LocalDir)
		assert.Contains(t, cfg.History.DSN, "autoreply.db")
		assert.Equal(t, 4, cfg.History.MaxOpenConns)
		assert.Equal(t, 10*time.Second, cfg.Dispatch.ReplyDelay)
		assert.Equal(t, 10*time.Second, cfg.Dispatch.DMDelay)
		assert.Equal(t, 4, cfg.Dispatch.MaxConcurrent)
		assert.Equal(t, 30*time.Second, cfg.Dispatch.DrainTimeout)
		assert.False(t, cfg.Poll.Enabled)
		assert.Equal(t, 5*time.Minute, cfg.Poll.Interval)
		assert.Equal(t, 10, cfg.Poll.MaxPosts)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
invalid yaml content
  with bad indentation
    and no structure
`))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{Platform: PlatformConfig{AccessToken: "tok", VerifyToken: "verify"}}
		setDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "no access token", modify: func(c *Config) { c.Platform.AccessToken = "" },
			errMsg: "platform.access_token is required"},
		{name: "no verify token", modify: func(c *Config) { c.Platform.VerifyToken = "" },
			errMsg: "platform.verify_token is required"},
		{name: "relative graph url", modify: func(c *Config) { c.Platform.GraphURL = "graph.instagram.com" },
			errMsg: "platform.graph_url must be an absolute url"},
		{name: "negative delay", modify: func(c *Config) { c.Dispatch.DMDelay = -time.Second },
			errMsg: "dispatch delays must be non-negative"},
		{name: "zero concurrency", modify: func(c *Config) { c.Dispatch.MaxConcurrent = -1 },
			errMsg: "dispatch.max_concurrent must be at least 1"},
		{name: "poll too often", modify: func(c *Config) { c.Poll.Enabled = true; c.Poll.Interval = time.Second },
			errMsg: "poll.interval must be at least 10 seconds"},
		{name: "short poll interval ignored when disabled", modify: func(c *Config) { c.Poll.Interval = time.Second }},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = 100 * time.Millisecond },
			errMsg: "server timeout must be at least 1 second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second}}
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}
