package api

import (
	"strings"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"RFC3339", "2025-08-26T14:30:45Z", time.Date(2025, 8, 26, 14, 30, 45, 0, time.UTC)},
		{"no timezone", "2025-08-26T14:30:45", time.Date(2025, 8, 26, 14, 30, 45, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "not-a-time", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTimestamp(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAPITradeToModel(t *testing.T) {
	t.Run("yes taker uses yes price", func(t *testing.T) {
		at := APITrade{
			TradeID:     "t-1",
			Ticker:      "KXBTCD-25AUG26-T64000",
			Count:       10,
			YesPrice:    60,
			NoPrice:     40,
			TakerSide:   "yes",
			CreatedTime: "2025-08-26T14:00:00Z",
		}
		tr := at.ToModel()
		if tr.Price != 60 {
			t.Errorf("Price = %d, want 60", tr.Price)
		}
		if tr.TradeID != "t-1" {
			t.Errorf("TradeID = %q, want t-1", tr.TradeID)
		}
	})

	t.Run("no taker uses no price", func(t *testing.T) {
		at := APITrade{Ticker: "X", TradeID: "t-2", Count: 5, YesPrice: 60, NoPrice: 40, TakerSide: "no"}
		if tr := at.ToModel(); tr.Price != 40 {
			t.Errorf("Price = %d, want 40", tr.Price)
		}
	})

	t.Run("missing trade_id is synthesized from ticker+timestamp", func(t *testing.T) {
		at := APITrade{Ticker: "KXETH-25AUG26-T3200", Count: 1, CreatedTime: "2025-08-26T14:00:00Z"}
		tr := at.ToModel()
		if tr.TradeID == "" {
			t.Fatal("TradeID should be synthesized, got empty")
		}
		if !strings.HasPrefix(tr.TradeID, "KXETH-25AUG26-T3200-") {
			t.Errorf("TradeID = %q, want ticker prefix", tr.TradeID)
		}
	})
}

func TestAPIMarketToModel(t *testing.T) {
	am := APIMarket{
		Ticker:      "KXBTCD-25AUG26-T64000",
		EventTicker: "KXBTCD-25AUG26",
		Title:       "Bitcoin above $64,000?",
		Category:    "Crypto",
		Status:      "open",
		YesBid:      61,
		YesAsk:      63,
		LastPrice:   62,
		Volume24h:   1200,
		OpenTime:    "2025-08-25T00:00:00Z",
	}

	m := am.ToModel()
	if m.Source != "market" {
		t.Errorf("Source = %q, want market", m.Source)
	}
	if m.LastPrice != 62 || m.Volume24h != 1200 {
		t.Errorf("price/volume = %d/%d, want 62/1200", m.LastPrice, m.Volume24h)
	}
	if m.OpenTime.IsZero() {
		t.Error("OpenTime should be parsed")
	}
}

func TestEventToModel(t *testing.T) {
	t.Run("nested market fills prices", func(t *testing.T) {
		ev := EventWithNested{
			APIEvent: APIEvent{EventTicker: "KXBTCD-25AUG26", Title: "Bitcoin price on Aug 26", Category: "Crypto", Status: "open"},
			Markets: []APIMarket{
				{Ticker: "KXBTCD-25AUG26-T64000", LastPrice: 62, Volume24h: 1500},
				{Ticker: "KXBTCD-25AUG26-T66000", LastPrice: 30, Volume24h: 900},
			},
		}

		m := ev.ToModel("KXBTCD-25AUG26")
		if m.Source != "event" {
			t.Errorf("Source = %q, want event", m.Source)
		}
		if m.Ticker != "KXBTCD-25AUG26" {
			t.Errorf("Ticker = %q", m.Ticker)
		}
		if m.LastPrice != 62 || m.Volume24h != 1500 {
			t.Errorf("should use first nested market, got price=%d vol=%d", m.LastPrice, m.Volume24h)
		}
	})

	t.Run("no nested markets leaves prices zero", func(t *testing.T) {
		ev := EventWithNested{APIEvent: APIEvent{EventTicker: "KXBTCD-25AUG26", Title: "Bitcoin price on Aug 26"}}
		m := ev.ToModel("KXBTCD-25AUG26")
		if m.LastPrice != 0 || m.Volume24h != 0 {
			t.Errorf("prices should be zero, got %d/%d", m.LastPrice, m.Volume24h)
		}
		if m.Title != "Bitcoin price on Aug 26" {
			t.Errorf("Title = %q", m.Title)
		}
	})
}
