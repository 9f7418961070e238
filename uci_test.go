package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  name: TestBot\nlog:\n  level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	in := strings.NewReader("uci\nposition startpos moves e2e4\ngo depth 2\nquit\n")
	if err := run(path, "", in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "id name TestBot\n") {
		t.Fatalf("engine name from config not used: %q", got)
	}
	if strings.Count(got, "bestmove ") != 1 {
		t.Fatalf("want exactly one bestmove: %q", got)
	}
}

func TestRunBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search:\n  depth: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(path, "", strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatalf("invalid config accepted")
	}
}

func BenchmarkSession(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var out bytes.Buffer
		in := strings.NewReader("position startpos\ngo depth 4\n")
		if err := run("", "error", in, &out); err != nil {
			b.Fatal(err)
		}
	}
}
