package platform

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/pkg/config"
)

func TestValidateConfig(t *testing.T) {
	valid := config.PlatformConfig{
		BaseURL: "https://acme.frequencyai.cloud",
		APIKey:  strings.Repeat("k", 24),
	}
	if issues := ValidateConfig(valid); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}

	cases := []struct {
		name string
		cfg  config.PlatformConfig
		want string
	}{
		{
			name: "missing url",
			cfg:  config.PlatformConfig{APIKey: strings.Repeat("k", 24)},
			want: "PLATFORM_URL is missing",
		},
		{
			name: "insecure scheme",
			cfg:  config.PlatformConfig{BaseURL: "http://acme.frequencyai.cloud", APIKey: strings.Repeat("k", 24)},
			want: "PLATFORM_URL must use https",
		},
		{
			name: "wrong suffix",
			cfg:  config.PlatformConfig{BaseURL: "https://acme.example.com", APIKey: strings.Repeat("k", 24)},
			want: "PLATFORM_URL must end with " + DomainSuffix,
		},
		{
			name: "missing key",
			cfg:  config.PlatformConfig{BaseURL: "https://acme.frequencyai.cloud"},
			want: "PLATFORM_API_KEY is missing",
		},
		{
			name: "short key",
			cfg:  config.PlatformConfig{BaseURL: "https://acme.frequencyai.cloud", APIKey: "short"},
			want: "PLATFORM_API_KEY appears to be invalid",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := ValidateConfig(tc.cfg)
			found := false
			for _, issue := range issues {
				if issue == tc.want {
					found = true
				}
			}
			if !found {
				t.Errorf("issues %v missing %q", issues, tc.want)
			}
		})
	}
}

func TestAuthRedirectURL(t *testing.T) {
	cfg := config.PlatformConfig{BaseURL: "https://acme.frequencyai.cloud/"}
	if got, want := AuthRedirectURL(cfg), "https://acme.frequencyai.cloud/auth/callback"; got != want {
		t.Errorf("AuthRedirectURL = %q, want %q", got, want)
	}

	cfg.AuthRedirectURL = "https://override.frequencyai.cloud/cb"
	if got := AuthRedirectURL(cfg); got != cfg.AuthRedirectURL {
		t.Errorf("override ignored: got %q", got)
	}
}

func TestUnconfiguredClientFailsGracefully(t *testing.T) {
	var c *Client

	if c.Configured() {
		t.Fatal("nil client reports configured")
	}
	if _, err := c.DB(); !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("DB error = %v, want ErrNotInitialized", err)
	}
	if _, err := c.Redis(); !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Redis error = %v, want ErrNotInitialized", err)
	}
	if _, err := c.Bus(); !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Bus error = %v, want ErrNotInitialized", err)
	}
	if err := c.Ping(context.Background()); !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Ping error = %v, want ErrNotInitialized", err)
	}
	c.Close() // must not panic
}
