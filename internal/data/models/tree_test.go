package models

import "testing"

func TestTreeListingHas(t *testing.T) {
	tree := NewTreeListing([]string{
		"README.md",
		".github/workflows/deploy.yml",
		"src/main.go",
	})

	if !tree.Has("README.md") {
		t.Error("Has(README.md) = false, want true")
	}
	if tree.Has("readme.md") {
		t.Error("Has(readme.md) = true; matching is case-sensitive")
	}
	if tree.Has("src") {
		t.Error("Has(src) = true; directories are not exact entries")
	}
}

func TestTreeListingHasDir(t *testing.T) {
	tree := NewTreeListing([]string{
		".github/workflows/deploy.yml",
		"terraform/main.tf",
	})

	tests := []struct {
		dir  string
		want bool
	}{
		{".github/workflows/", true},
		{".github/workflows", true},
		{"terraform/", true},
		{"k8s/", false},
		{".github/workflows/deploy.yml/", false},
	}
	for _, tt := range tests {
		if got := tree.HasDir(tt.dir); got != tt.want {
			t.Errorf("HasDir(%q) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestTreeListingHasAny(t *testing.T) {
	tree := NewTreeListing([]string{
		"Dockerfile",
		"deploy/app.yaml",
	})

	tests := []struct {
		name    string
		entries []string
		want    bool
	}{
		{"exact match", []string{"Dockerfile"}, true},
		{"dir prefix match", []string{"deploy/"}, true},
		{"no match", []string{"Makefile", "infra/"}, false},
		{"exact entry does not match as prefix", []string{"deploy"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.HasAny(tt.entries); got != tt.want {
				t.Errorf("HasAny(%v) = %v, want %v", tt.entries, got, tt.want)
			}
		})
	}
}

func TestTreeListingNil(t *testing.T) {
	var tree *TreeListing
	if tree.Has("x") || tree.HasDir("x/") || tree.HasAny([]string{"x"}) || tree.Len() != 0 {
		t.Error("nil TreeListing must report nothing present")
	}
}

func TestWorkflowTextsContainsAny(t *testing.T) {
	w := NewWorkflowTexts([]string{
		"name: CI\nsteps:\n  - run: Go Test ./...",
	})

	if !w.ContainsAny([]string{"go test"}) {
		t.Error("ContainsAny(go test) = false; texts should be lowercased at construction")
	}
	if w.ContainsAny([]string{"codeql"}) {
		t.Error("ContainsAny(codeql) = true, want false")
	}

	var nilTexts *WorkflowTexts
	if nilTexts.ContainsAny([]string{"anything"}) {
		t.Error("nil WorkflowTexts must report nothing present")
	}
}
