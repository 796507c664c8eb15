package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	if err := Initialize(Config{Level: "debug", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(Nop)

	Debug("chart rendered")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"chart rendered"`) {
		t.Fatalf("expected json log line, got %q", data)
	}
}

func TestInitializeFallsBackToInfoOnBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	if err := Initialize(Config{Level: "loud", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(Nop)

	Debug("hidden")
	Info("shown")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug line should be filtered at info level: %q", data)
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatalf("expected info line: %q", data)
	}
}
