package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Game.CardsPerHand != 13 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  addr: \":9090\"\ngame:\n  total_rounds: 8\nbots:\n  east: easy\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr: got %q", cfg.Server.Addr)
	}
	if cfg.Game.TotalRounds != 8 {
		t.Fatalf("total_rounds: got %d", cfg.Game.TotalRounds)
	}
	if cfg.Bots.East != "easy" || cfg.Bots.North != "normal" {
		t.Fatalf("bots: %+v", cfg.Bots)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"game:\n  cards_per_hand: 14\n",
		"game:\n  total_rounds: 0\n",
		"bots:\n  west: impossible\n",
	}
	for _, body := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("expected validation error for %q", body)
		}
	}
}

func TestRulesMapping(t *testing.T) {
	cfg := Default()
	cfg.Game.CardsPerHand = 10
	cfg.Game.TotalRounds = 6

	r := cfg.Rules()
	if r.CardsPerHand != 10 || r.TotalRounds != 6 {
		t.Fatalf("rules mapping: %+v", r)
	}
	if r.BidMin != 170 || r.BidMax != 280 || r.BidStep != 5 {
		t.Fatalf("bid bounds should come from the preset: %+v", r)
	}
}
