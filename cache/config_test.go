package cache

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{DefaultTTL: 2 * time.Minute, SweepInterval: 5 * time.Minute},
		},
		{
			name:    "zero ttl",
			cfg:     Config{SweepInterval: time.Minute},
			wantErr: "DefaultTTL",
		},
		{
			name:    "negative sweep",
			cfg:     Config{DefaultTTL: time.Minute, SweepInterval: -1},
			wantErr: "SweepInterval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewMemoryStore_RoundTrip(t *testing.T) {
	store, err := NewMemoryStore(DefaultConfig())
	if err != nil {
		t.Fatalf("NewMemoryStore() error = %v", err)
	}
	defer store.Close()

	store.Set("k", "v")

	got, ok := store.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get() = %v, %v, want v, true", got, ok)
	}
}

func TestNewMemoryStore_InvalidConfig(t *testing.T) {
	if _, err := NewMemoryStore(Config{}); err == nil {
		t.Error("NewMemoryStore() with zero config should fail validation")
	}
}
