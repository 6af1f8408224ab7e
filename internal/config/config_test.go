package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Rate != 70 || cfg.Delay != 250 {
		t.Fatalf("unexpected defaults: rate %d, delay %d", cfg.Rate, cfg.Delay)
	}
}

func TestValidate_RateBounds(t *testing.T) {
	cases := []struct {
		rate uint16
		ok   bool
	}{
		{0, false},
		{1, true},
		{70, true},
		{1000, true},
		{1001, false},
		{65535, false},
	}
	for _, c := range cases {
		cfg := Default()
		cfg.Rate = c.rate
		err := cfg.Validate()
		if (err == nil) != c.ok {
			t.Errorf("rate %d: Validate() = %v, want ok=%v", c.rate, err, c.ok)
		}
	}
}

func TestValidate_DelayBounds(t *testing.T) {
	cfg := Default()
	cfg.Delay = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected delay 0 to be rejected")
	}
	cfg.Delay = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected delay 1 to validate, got %v", err)
	}
}

func TestParseUint16(t *testing.T) {
	valid := map[string]uint16{
		"1":     1,
		"70":    70,
		"250":   250,
		"65535": 65535,
	}
	for in, want := range valid {
		got, err := ParseUint16(in)
		if err != nil {
			t.Errorf("ParseUint16(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseUint16(%q) = %d, want %d", in, got, want)
		}
	}

	for _, in := range []string{"", "abc", "-1", "70x", "1.5", "65536", "99999999999999999999"} {
		if _, err := ParseUint16(in); err == nil {
			t.Errorf("ParseUint16(%q) succeeded, want error", in)
		}
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rate != DefaultRate || cfg.Delay != DefaultDelay {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "rate: 50\ndisplay: \":1\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rate != 50 {
		t.Fatalf("rate = %d, want 50", cfg.Rate)
	}
	if cfg.Delay != DefaultDelay {
		t.Fatalf("delay = %d, want default %d", cfg.Delay, DefaultDelay)
	}
	if cfg.Display != ":1" {
		t.Fatalf("display = %q, want :1", cfg.Display)
	}
}

func TestLoad_RejectsOutOfRangeFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rate: 2000\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected out-of-range rate in file to be rejected")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rate: [oops\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected malformed yaml to be rejected")
	}
}
