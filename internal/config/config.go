package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type AppConfig struct {
	k *koanf.Koanf
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{k: koanf.New(".")}

	setDefaults(c.k)

	return c
}

func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		if err := c.k.Load(file.Provider(name), yaml.Parser()); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			loaded = true
		}
	}

	return loaded
}

func (c *AppConfig) LoadEnv(prefix string) error {
	return c.k.Load(env.Provider(prefix, ".", func(s string) string {
		s1 := strings.ToLower(strings.TrimPrefix(s, prefix))
		for _, pr := range []string{"smtp_", "token_"} {
			if strings.HasPrefix(s1, pr) {
				return strings.Replace(s1, "_", ".", 1)
			}
		}

		return s1
	}), nil)
}

func (c *AppConfig) Bool(key string) bool {
	return c.k.Bool(key)
}

func (c *AppConfig) String(key string) string {
	return c.k.String(key)
}

func (c *AppConfig) Int(key string) int {
	return c.k.Int(key)
}

func (c *AppConfig) Set(key string, v any) error {
	return c.k.Set(key, v)
}

func (c *AppConfig) ApiAddr() string {
	return c.k.String("api_addr")
}

func (c *AppConfig) DB() string {
	return c.k.String("db")
}

func (c *AppConfig) Debug() bool {
	return c.k.Bool("debug")
}

func (c *AppConfig) TokenKey() []byte {
	return []byte(c.k.String("token.key"))
}

func (c *AppConfig) AccessTokenTTL() time.Duration {
	return c.k.Duration("token.access_ttl")
}

func (c *AppConfig) RefreshTokenTTL() time.Duration {
	return c.k.Duration("token.refresh_ttl")
}

func (c *AppConfig) NotifyQueueSize() int {
	return c.k.Int("notify_queue")
}

func (c *AppConfig) RateLimit() int {
	return c.k.Int("rate_limit")
}

func (c *AppConfig) SmtpHost() string {
	return c.k.String("smtp.host")
}

func (c *AppConfig) SmtpPort() int {
	return c.k.Int("smtp.port")
}

func (c *AppConfig) SmtpUsername() string {
	return c.k.String("smtp.username")
}

func (c *AppConfig) SmtpPassword() string {
	return c.k.String("smtp.password")
}

func (c *AppConfig) SmtpFrom() string {
	return c.k.String("smtp.from")
}

func setDefaults(k *koanf.Koanf) {
	k.Set("api_addr", ":8080")
	k.Set("db", "tripline.sqlite")

	k.Set("token.key", "change-me")
	k.Set("token.access_ttl", "15m")
	k.Set("token.refresh_ttl", "168h")

	k.Set("notify_queue", 100)
	k.Set("rate_limit", 100)

	k.Set("smtp.port", 587)
	k.Set("smtp.from", "noreply@tripline.local")
}
