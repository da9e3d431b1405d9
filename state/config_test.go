package state_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tailored-agentic-units/varstate/state"
)

func TestDefaultConfig(t *testing.T) {
	cfg := state.DefaultConfig()

	if cfg.Observer != "noop" {
		t.Errorf("got Observer %q, want %q", cfg.Observer, "noop")
	}
	if cfg.KeyOrder != state.KeyOrderNatural {
		t.Errorf("got KeyOrder %q, want %q", cfg.KeyOrder, state.KeyOrderNatural)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := state.DefaultConfig()

	cfg.Merge(&state.Config{Observer: "slog"})

	if cfg.Observer != "slog" {
		t.Errorf("got Observer %q, want %q", cfg.Observer, "slog")
	}
	if cfg.KeyOrder != state.KeyOrderNatural {
		t.Errorf("got KeyOrder %q, want %q (preserved)", cfg.KeyOrder, state.KeyOrderNatural)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		order   state.KeyOrder
		wantErr bool
	}{
		{name: "natural", order: state.KeyOrderNatural},
		{name: "lexical", order: state.KeyOrderLexical},
		{name: "empty", order: "", wantErr: true},
		{name: "unsupported", order: "insertion", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := state.Config{KeyOrder: tt.order}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, state.ErrUnknownKeyOrder) {
				t.Errorf("Validate() error = %v, want ErrUnknownKeyOrder", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantOrder state.KeyOrder
		wantObs   string
		wantErr   bool
	}{
		{
			name:      "yaml",
			content:   "observer: slog\nkey_order: lexical\n",
			wantOrder: state.KeyOrderLexical,
			wantObs:   "slog",
		},
		{
			name:      "json",
			content:   `{"observer": "slog"}`,
			wantOrder: state.KeyOrderNatural,
			wantObs:   "slog",
		},
		{
			name:      "empty file keeps defaults",
			content:   "",
			wantOrder: state.KeyOrderNatural,
			wantObs:   "noop",
		},
		{
			name:    "invalid order",
			content: "key_order: shuffled\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			content: "observer: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := state.LoadConfig(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if cfg.KeyOrder != tt.wantOrder {
				t.Errorf("got KeyOrder %q, want %q", cfg.KeyOrder, tt.wantOrder)
			}
			if cfg.Observer != tt.wantObs {
				t.Errorf("got Observer %q, want %q", cfg.Observer, tt.wantObs)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := state.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() should fail for a missing file")
	}
}
