package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSinkInfersFormat(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"json extension", filepath.Join(dir, "out.json"), false},
		{"ndjson extension", filepath.Join(dir, "out.ndjson"), false},
		{"jsonl extension", filepath.Join(dir, "out.jsonl"), false},
		{"unknown extension", filepath.Join(dir, "out.csv"), true},
		{"no extension", filepath.Join(dir, "out"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := NewFileSink(tt.path, "")
			if tt.wantErr {
				if err == nil {
					t.Error("NewFileSink should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFileSink: %v", err)
			}
			_ = sink.Close()
		})
	}
}

func TestFileSinkJSONAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := sink.Write(sampleRecord("repo", false)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Write(Event{Type: "run.finished"}); err != nil {
		t.Fatalf("Write event: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if len(records) != 1 || records[0].Repository != "octo/repo" {
		t.Errorf("records = %+v, want one record for octo/repo", records)
	}
}

func TestFileSinkNDJSONStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := sink.Write(Event{Type: "run.started", Repos: 2}); err != nil {
		t.Fatalf("Write event: %v", err)
	}
	if err := sink.Write(sampleRecord("repo", false)); err != nil {
		t.Fatalf("Write record: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), raw)
	}
}

func TestFileSinkCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}
