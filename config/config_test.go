package config

import (
	"testing"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8899 {
		t.Errorf("port = %d, want 8899", cfg.Port)
	}
	if cfg.RefreshPeriod != 5*time.Second {
		t.Errorf("refresh period = %s, want 5s", cfg.RefreshPeriod)
	}
	if cfg.FullRefreshTick != 12 {
		t.Errorf("full refresh tick = %d, want 12", cfg.FullRefreshTick)
	}
	if cfg.WriteRetries != 2 || cfg.ReadRetries != 0 {
		t.Errorf("retries = read:%d write:%d, want read:0 write:2", cfg.ReadRetries, cfg.WriteRetries)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GIVENERGY_MODBUS_PORT", "1502")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 1502 {
		t.Errorf("port = %d, want 1502 from env override", cfg.Port)
	}
}

func TestLogLevelValue(t *testing.T) {
	cases := map[string]common.LogLevel{
		"debug": common.LevelDebug,
		"WARN":  common.LevelWarn,
		"bogus": common.LevelInfo,
	}
	for in, want := range cases {
		cfg := &Config{LogLevel: in}
		if got := cfg.LogLevelValue(); got != want {
			t.Errorf("LogLevelValue(%q) = %v, want %v", in, got, want)
		}
	}
}
