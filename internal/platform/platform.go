// Package platform owns the connection handle to the hosted member
// platform: the row store, the session store and the change-event bus.
// The client is constructed exactly once at startup and passed to every
// component that needs it; an unconfigured deployment yields no usable
// client and every dependent operation fails with a distinguishable
// "service not initialized" error instead of an unhandled fault.
package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/pkg/config"
	"github.com/frequencyai/member-platform/pkg/events"
	"github.com/frequencyai/member-platform/pkg/logger"
)

// DomainSuffix is the hosted platform's expected domain suffix.
const DomainSuffix = ".frequencyai.cloud"

const minAPIKeyLength = 20

// ValidateConfig checks the platform identity config and returns the list
// of issues found. An empty list means the deployment is configured.
func ValidateConfig(cfg config.PlatformConfig) []string {
	var issues []string

	if cfg.BaseURL == "" {
		issues = append(issues, "PLATFORM_URL is missing")
	} else {
		if !strings.HasPrefix(cfg.BaseURL, "https://") {
			issues = append(issues, "PLATFORM_URL must use https")
		}
		if !strings.HasSuffix(cfg.BaseURL, DomainSuffix) {
			issues = append(issues, "PLATFORM_URL must end with "+DomainSuffix)
		}
	}

	if cfg.APIKey == "" {
		issues = append(issues, "PLATFORM_API_KEY is missing")
	} else if len(cfg.APIKey) < minAPIKeyLength {
		issues = append(issues, "PLATFORM_API_KEY appears to be invalid")
	}

	return issues
}

// AuthRedirectURL resolves the post-authentication callback target,
// defaulting to <base>/auth/callback when no override is configured.
func AuthRedirectURL(cfg config.PlatformConfig) string {
	if cfg.AuthRedirectURL != "" {
		return cfg.AuthRedirectURL
	}
	return strings.TrimSuffix(cfg.BaseURL, "/") + "/auth/callback"
}

// Client aggregates the live backend handles. It is read-only shared
// state after construction and safe for concurrent use.
type Client struct {
	db    *pgxpool.Pool
	redis *redis.Client
	bus   events.EventBus
}

// New validates the configuration and connects the backend handles.
// Invalid platform config is logged and reported as ErrNotInitialized;
// the caller decides whether that is fatal.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if issues := ValidateConfig(cfg.Platform); len(issues) > 0 {
		for _, issue := range issues {
			logger.Warn("platform configuration issue", "issue", issue)
		}
		return nil, fmt.Errorf("platform config: %w", domain.ErrNotInitialized)
	}

	pool, err := connectDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	rdb := redis.NewClient(redisOpts)

	bus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("connect event bus: %w", err)
	}

	logger.Info("platform client configured",
		"base_url", cfg.Platform.BaseURL,
		"auth_redirect", AuthRedirectURL(cfg.Platform),
	)

	return &Client{db: pool, redis: rdb, bus: bus}, nil
}

func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	pc.MinConns = int32(cfg.MinConns)
	pc.MaxConns = int32(cfg.MaxConns)
	pc.MaxConnLifetime = cfg.MaxLifetime
	pc.HealthCheckPeriod = 30 * time.Second

	return pgxpool.NewWithConfig(ctx, pc)
}

// Configured reports whether the client holds live handles.
func (c *Client) Configured() bool {
	return c != nil && c.db != nil
}

// ready gates every accessor below so a nil or torn-down client degrades
// into ErrNotInitialized rather than a nil dereference.
func (c *Client) ready() error {
	if !c.Configured() {
		return domain.ErrNotInitialized
	}
	return nil
}

// DB returns the row-store pool.
func (c *Client) DB() (*pgxpool.Pool, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.db, nil
}

// Redis returns the session-store client.
func (c *Client) Redis() (*redis.Client, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.redis, nil
}

// Bus returns the change-event bus.
func (c *Client) Bus() (events.EventBus, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.bus, nil
}

// Ping verifies the row store and session store are reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.db.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.bus != nil {
		_ = c.bus.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.db != nil {
		c.db.Close()
	}
}
