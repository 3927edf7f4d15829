package feed

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/kalshiwhale/tracker/internal/model"
)

func TestAlerts(t *testing.T) {
	now := time.Date(2025, 8, 26, 14, 0, 0, 0, time.UTC)
	cfg := AlertsConfig{WhaleFraction: 0.125, HighVolumeMinimum: 1_000_000}

	s := &model.Snapshot{
		Markets: []model.Rollup{
			{Ticker: "X", Title: "Bitcoin above $64,000?", WhaleActivity: true, Volume: 2_000_000, LastUpdated: now},
			{Ticker: "Y", Title: "Ethereum above $3,200?", WhaleActivity: false, Volume: 500},
			{Ticker: "Z", Title: "Solana above $150?", WhaleActivity: true, Volume: 1200, LastUpdated: now},
		},
		Count:     3,
		Timestamp: now,
	}

	resp := Alerts(s, cfg)

	t.Run("one alert per whale-flagged rollup", func(t *testing.T) {
		if resp.Count != 2 || len(resp.Alerts) != 2 {
			t.Fatalf("Count = %d, want 2", resp.Count)
		}
		if resp.WhaleSignalsCount != 2 {
			t.Errorf("WhaleSignalsCount = %d, want 2", resp.WhaleSignalsCount)
		}
		for _, a := range resp.Alerts {
			if a.Ticker == "Y" {
				t.Error("unflagged rollup should not produce an alert")
			}
		}
	})

	t.Run("alert shape", func(t *testing.T) {
		a := resp.Alerts[0]
		if a.ID == "" {
			t.Error("ID should be synthesized")
		}
		if a.Type != AlertTypeWhaleTrade {
			t.Errorf("Type = %q, want %q", a.Type, AlertTypeWhaleTrade)
		}
		if a.Severity != "medium" || a.Confidence != 80 {
			t.Errorf("placeholder severity/confidence = %q/%d, want medium/80", a.Severity, a.Confidence)
		}
		if !strings.Contains(a.Description, "Bitcoin above $64,000?") {
			t.Errorf("Description = %q, want market title referenced", a.Description)
		}
	})

	t.Run("alert IDs are unique", func(t *testing.T) {
		if resp.Alerts[0].ID == resp.Alerts[1].ID {
			t.Error("alert IDs should be unique")
		}
	})

	t.Run("alert IDs are stable across reads", func(t *testing.T) {
		again := Alerts(s, cfg)
		for i := range resp.Alerts {
			if again.Alerts[i].ID != resp.Alerts[i].ID {
				t.Errorf("alert %d ID changed between reads: %q vs %q",
					i, resp.Alerts[i].ID, again.Alerts[i].ID)
			}
		}
	})

	t.Run("alert IDs change with the cycle", func(t *testing.T) {
		next := *s
		next.Seq = s.Seq + 1
		if Alerts(&next, cfg).Alerts[0].ID == resp.Alerts[0].ID {
			t.Error("a new cycle should mint new alert IDs")
		}
	})

	t.Run("high volume count uses the configured floor", func(t *testing.T) {
		if resp.HighVolumeCount != 1 {
			t.Errorf("HighVolumeCount = %d, want 1", resp.HighVolumeCount)
		}
	})

	t.Run("static descriptors", func(t *testing.T) {
		if !resp.DetectionTypes[AlertTypeWhaleTrade] || !resp.DetectionTypes["high_volume"] {
			t.Errorf("DetectionTypes = %v", resp.DetectionTypes)
		}
		if resp.Thresholds.WhaleNotionalFraction != 0.125 {
			t.Errorf("WhaleNotionalFraction = %v, want 0.125", resp.Thresholds.WhaleNotionalFraction)
		}
		if resp.Thresholds.HighVolumeMinimum != 1_000_000 {
			t.Errorf("HighVolumeMinimum = %d, want 1000000", resp.Thresholds.HighVolumeMinimum)
		}
	})
}

func TestTopMarkets(t *testing.T) {
	now := time.Date(2025, 8, 26, 14, 0, 0, 0, time.UTC)
	s := &model.Snapshot{
		Markets: []model.Rollup{
			{Ticker: "A", Volume: 10},
			{Ticker: "B", Volume: 300},
			{Ticker: "C", Volume: 200},
		},
		Count:     3,
		Timestamp: now,
	}

	t.Run("sorts by volume descending and truncates", func(t *testing.T) {
		top := TopMarkets(s, 2)
		if top.Count != 2 {
			t.Fatalf("Count = %d, want 2", top.Count)
		}
		if top.Markets[0].Ticker != "B" || top.Markets[1].Ticker != "C" {
			t.Errorf("order = %q,%q want B,C", top.Markets[0].Ticker, top.Markets[1].Ticker)
		}
	})

	t.Run("does not reorder the snapshot", func(t *testing.T) {
		TopMarkets(s, 1)
		if s.Markets[0].Ticker != "A" {
			t.Error("snapshot order mutated by TopMarkets")
		}
	})

	t.Run("detailed top5 reshapes into cards", func(t *testing.T) {
		detailed := &model.Snapshot{
			Markets: []model.Rollup{
				{Ticker: "A", Title: "Bitcoin above $64,000?", Category: "Crypto", LastPrice: 62, Volume: 2_000_000, WhaleActivity: true, Status: "open"},
				{Ticker: "B", Title: "Ethereum above $3,200?", LastPrice: 40, Volume: 500},
			},
			Count:     2,
			Timestamp: now,
		}

		resp := Top5Detailed(detailed, 1_000_000)
		if resp.Count != 2 {
			t.Fatalf("Count = %d, want 2", resp.Count)
		}

		card := resp.Markets[0]
		if card.Ticker != "A" || card.Question != "Bitcoin above $64,000?" {
			t.Errorf("first card = %+v, want highest-volume market", card)
		}
		if !card.Trending || !card.HighVolume {
			t.Error("2M volume should flag trending and high_volume over a 1M floor")
		}
		if len(card.Outcomes) != 2 {
			t.Fatalf("outcomes = %d, want YES and NO", len(card.Outcomes))
		}
		if math.Abs(card.Outcomes[0].Probability-0.62) > 1e-9 ||
			math.Abs(card.Outcomes[1].Probability-0.38) > 1e-9 {
			t.Errorf("probabilities = %v/%v, want 0.62/0.38",
				card.Outcomes[0].Probability, card.Outcomes[1].Probability)
		}

		small := resp.Markets[1]
		if small.Trending || small.HighVolume {
			t.Error("500 volume should not flag trending or high_volume")
		}
	})

	t.Run("markets view is verbatim", func(t *testing.T) {
		v := Markets(s)
		if v.Count != 3 || v.Markets[0].Ticker != "A" {
			t.Errorf("markets view = %+v", v)
		}
		if !v.Timestamp.Equal(now) {
			t.Errorf("Timestamp = %v, want %v", v.Timestamp, now)
		}
	})
}
