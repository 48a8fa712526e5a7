package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"repovitals/internal/config"
	gh "repovitals/internal/github"

	"github.com/google/go-github/v81/github"
)

func testDiscoveryClient(t *testing.T, handler http.HandlerFunc) *gh.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := github.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("parse base URL: %v", err)
	}
	c.BaseURL = base
	return &gh.Client{Client: c, HTTP: srv.Client()}
}

func TestResolveReposSkipsUnresolvableExplicitRepo(t *testing.T) {
	client := testDiscoveryClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/good":
			fmt.Fprint(w, `{"id": 7, "name": "good", "full_name": "octo/good", "owner": {"login": "octo"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	})

	cfg := config.New()
	cfg.Targeting.Repos = []string{"octo/missing", "octo/good"}

	refs, err := ResolveRepos(context.Background(), client, cfg)
	if err != nil {
		t.Fatalf("ResolveRepos: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1: %+v", len(refs), refs)
	}
	if got := refs[0].FullName(); got != "octo/good" {
		t.Errorf("FullName = %q, want %q", got, "octo/good")
	}
}

func TestResolveReposAllExplicitReposUnresolvable(t *testing.T) {
	client := testDiscoveryClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	cfg := config.New()
	cfg.Targeting.Repos = []string{"octo/gone", "octo/also-gone"}

	refs, err := ResolveRepos(context.Background(), client, cfg)
	if err != nil {
		t.Fatalf("ResolveRepos: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("got %d refs, want 0: %+v", len(refs), refs)
	}
}
