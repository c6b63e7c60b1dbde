package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { os.Remove(tmpfile.Name()) })
	return tmpfile.Name()
}

// TestLoadConfig verifies that YAML values are layered on top of defaults
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name:       "empty file keeps defaults",
			configYAML: ``,
			wantErr:    false,
			validateCfg: func(t *testing.T, cfg *Config) {
				if cfg.MarketChart.DefaultCoin != "nexo" {
					t.Errorf("DefaultCoin = %v, want nexo", cfg.MarketChart.DefaultCoin)
				}
				if cfg.MarketChart.DefaultCurrency != "eur" {
					t.Errorf("DefaultCurrency = %v, want eur", cfg.MarketChart.DefaultCurrency)
				}
				if cfg.MarketChart.DefaultDays != 30 {
					t.Errorf("DefaultDays = %v, want 30", cfg.MarketChart.DefaultDays)
				}
				if cfg.MarketChart.RequestTimeout != 30*time.Second {
					t.Errorf("RequestTimeout = %v, want 30s", cfg.MarketChart.RequestTimeout)
				}
			},
		},
		{
			name: "market chart overrides",
			configYAML: `
market_chart:
  default_coin: bitcoin
  default_currency: usd
  default_days: 90
  request_timeout: 5s
  location: UTC
override_coingecko_public_url: http://localhost:9999
`,
			wantErr: false,
			validateCfg: func(t *testing.T, cfg *Config) {
				if cfg.MarketChart.DefaultCoin != "bitcoin" {
					t.Errorf("DefaultCoin = %v, want bitcoin", cfg.MarketChart.DefaultCoin)
				}
				if cfg.MarketChart.DefaultDays != 90 {
					t.Errorf("DefaultDays = %v, want 90", cfg.MarketChart.DefaultDays)
				}
				if cfg.MarketChart.RequestTimeout != 5*time.Second {
					t.Errorf("RequestTimeout = %v, want 5s", cfg.MarketChart.RequestTimeout)
				}
				// Unset fields keep their defaults
				if cfg.MarketChart.ConnectionTimeout != 10*time.Second {
					t.Errorf("ConnectionTimeout = %v, want 10s", cfg.MarketChart.ConnectionTimeout)
				}
				if cfg.OverrideCoingeckoPublicURL != "http://localhost:9999" {
					t.Errorf("OverrideCoingeckoPublicURL = %v", cfg.OverrideCoingeckoPublicURL)
				}
			},
		},
		{
			name: "refresher watchlist",
			configYAML: `
refresher:
  enabled: true
  schedule: "0 */5 * * * *"
  workers: 3
  watchlist:
    - coin: nexo
      currency: eur
      days: 30
    - coin: bitcoin
`,
			wantErr: false,
			validateCfg: func(t *testing.T, cfg *Config) {
				if !cfg.Refresher.Enabled {
					t.Errorf("Refresher.Enabled = false, want true")
				}
				if cfg.Refresher.Workers != 3 {
					t.Errorf("Refresher.Workers = %v, want 3", cfg.Refresher.Workers)
				}
				if len(cfg.Refresher.Watchlist) != 2 {
					t.Fatalf("Watchlist length = %v, want 2", len(cfg.Refresher.Watchlist))
				}
				if cfg.Refresher.Watchlist[1].Coin != "bitcoin" || cfg.Refresher.Watchlist[1].Days != 0 {
					t.Errorf("Watchlist[1] = %+v", cfg.Refresher.Watchlist[1])
				}
			},
		},
		{
			name: "invalid yaml",
			configYAML: `
market_chart:
  default_days: invalid
`,
			wantErr: true,
		},
		{
			name: "non-positive days",
			configYAML: `
market_chart:
  default_days: 0
`,
			wantErr: true,
		},
		{
			name: "unknown location",
			configYAML: `
market_chart:
  location: Mars/Olympus
`,
			wantErr: true,
		},
		{
			name: "recorder enabled without path",
			configYAML: `
recorder:
  enabled: true
  path: ""
`,
			wantErr: true,
		},
		{
			name: "refresher invalid schedule",
			configYAML: `
refresher:
  enabled: true
  schedule: "every day"
`,
			wantErr: true,
		},
		{
			name: "refresher watchlist entry without coin",
			configYAML: `
refresher:
  enabled: true
  watchlist:
    - currency: usd
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.configYAML)

			cfg, err := LoadConfig(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.MarketChart.DefaultCoin != "nexo" {
		t.Errorf("DefaultCoin = %v, want nexo", cfg.MarketChart.DefaultCoin)
	}
	if cfg.Recorder.Enabled {
		t.Errorf("Recorder should be disabled by default")
	}
}

func TestLoadLocation(t *testing.T) {
	cfg := GetDefaultMarketChartConfig()
	loc, err := cfg.LoadLocation()
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	if loc != time.UTC {
		t.Errorf("LoadLocation() = %v, want UTC", loc)
	}

	cfg.Location = ""
	loc, err = cfg.LoadLocation()
	if err != nil || loc != time.UTC {
		t.Errorf("empty location should resolve to UTC, got %v, %v", loc, err)
	}
}
