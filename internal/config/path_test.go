package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("no home dir: %v", err)
	}
	t.Setenv("KIFUKU_TEST_DIR", "/opt/kifuku")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"tilde slash", "~/data/kifuku.db", filepath.Join(home, "data", "kifuku.db")},
		{"bare tilde", "~", home},
		{"env var", "$KIFUKU_TEST_DIR/kifuku.db", "/opt/kifuku/kifuku.db"},
		{"absolute unchanged", "/var/lib/kifuku.db", "/var/lib/kifuku.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
