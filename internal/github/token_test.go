package github

import (
	"context"
	"testing"
)

func TestResolveAuthTokenExplicit(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	token, source, err := ResolveAuthToken(context.Background(), "  explicit-token  ")
	if err != nil {
		t.Fatalf("ResolveAuthToken: %v", err)
	}
	if token != "explicit-token" {
		t.Errorf("token = %q, want explicit-token", token)
	}
	if source != AuthTokenSourceExplicit {
		t.Errorf("source = %q, want %q", source, AuthTokenSourceExplicit)
	}
}

func TestResolveAuthTokenEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "  env-token\n")

	token, source, err := ResolveAuthToken(context.Background(), "")
	if err != nil {
		t.Fatalf("ResolveAuthToken: %v", err)
	}
	if token != "env-token" {
		t.Errorf("token = %q, want env-token", token)
	}
	if source != AuthTokenSourceEnv {
		t.Errorf("source = %q, want %q", source, AuthTokenSourceEnv)
	}
}
