// Package config loads service settings from the environment, reading a .env
// file first when one is present.
package config

import (
	"fmt"
	"log"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	// WorkerMetricsAddr serves the standalone worker's /metrics; empty
	// disables it.
	WorkerMetricsAddr string
	DatabaseURL       string
	AMQPURL           string

	AuthSecret string
	TokenTTL   time.Duration

	GenerationTimeout time.Duration
	CaptionDelay      time.Duration
	PosterDelay       time.Duration
	VideoDelay        time.Duration
	AssistantDelay    time.Duration
	PublishDelay      time.Duration

	ScreenIdleTTL time.Duration

	RateBurst    int
	RatePerSec   int
	MaxBodyBytes int64

	// TrustedProxies may set X-Forwarded-For for rate limiting.
	TrustedProxies []netip.Prefix

	LogLevel string
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary key lookup.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	p := parser{lookup: lookup}

	cfg := &Config{
		HTTPAddr:          p.str("HTTP_ADDR", ":8080"),
		WorkerMetricsAddr: p.workerMetricsAddr(),
		DatabaseURL:       p.databaseURL(),
		AMQPURL:           p.str("AMQP_URL", ""),
		AuthSecret:        p.str("AUTH_SECRET", ""),
		LogLevel:          strings.ToLower(p.str("LOG_LEVEL", "info")),
	}

	cfg.TokenTTL = p.duration("AUTH_TOKEN_TTL", 24*time.Hour)
	cfg.GenerationTimeout = p.duration("GENERATION_TIMEOUT", 10*time.Second)
	cfg.CaptionDelay = p.duration("CAPTION_DELAY", 2*time.Second)
	cfg.PosterDelay = p.duration("POSTER_DELAY", 3*time.Second)
	cfg.VideoDelay = p.duration("VIDEO_DELAY", 5*time.Second)
	cfg.AssistantDelay = p.duration("ASSISTANT_DELAY", 1500*time.Millisecond)
	cfg.PublishDelay = p.duration("PUBLISH_DELAY", 2*time.Second)
	cfg.ScreenIdleTTL = p.duration("SCREEN_IDLE_TTL", 30*time.Minute)
	cfg.RateBurst = p.integer("RATE_LIMIT_BURST", 40)
	cfg.RatePerSec = p.integer("RATE_LIMIT_PER_SEC", 20)
	cfg.MaxBodyBytes = int64(p.integer("MAX_BODY_BYTES", 1<<20))
	cfg.TrustedProxies = p.prefixes("TRUSTED_PROXIES")

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive")
	}
	delays := map[string]time.Duration{
		"CAPTION_DELAY":   c.CaptionDelay,
		"POSTER_DELAY":    c.PosterDelay,
		"VIDEO_DELAY":     c.VideoDelay,
		"ASSISTANT_DELAY": c.AssistantDelay,
	}
	for key, d := range delays {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
		if c.GenerationTimeout > 0 && d >= c.GenerationTimeout {
			return fmt.Errorf("%s (%s) must be shorter than GENERATION_TIMEOUT (%s)", key, d, c.GenerationTimeout)
		}
	}
	if c.RateBurst <= 0 || c.RatePerSec <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) str(key, def string) string {
	if v, ok := p.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return d
}

func (p *parser) integer(key string, def int) int {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return n
}

// workerMetricsAddr defaults to :9091; an explicitly empty value turns the
// listener off.
func (p *parser) workerMetricsAddr() string {
	v, ok := p.lookup("WORKER_METRICS_ADDR")
	if !ok {
		return ":9091"
	}
	return strings.TrimSpace(v)
}

// prefixes reads a comma separated list of CIDRs or bare addresses.
func (p *parser) prefixes(key string) []netip.Prefix {
	raw := p.str(key, "")
	if raw == "" {
		return nil
	}
	var out []netip.Prefix
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				p.fail(fmt.Errorf("invalid %s entry %q: %w", key, item, err))
				return nil
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			p.fail(fmt.Errorf("invalid %s entry %q: %w", key, item, err))
			return nil
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the
// DB_* parts.
func (p *parser) databaseURL() string {
	if dsn := p.str("DATABASE_URL", ""); dsn != "" {
		return dsn
	}
	host := p.str("DB_HOST", "")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.str("DB_USER", "postgres"),
		p.str("DB_PASSWORD", ""),
		host,
		p.str("DB_PORT", "5432"),
		p.str("DB_NAME", "creatorhub"),
		p.str("DB_SSLMODE", "disable"),
	)
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
