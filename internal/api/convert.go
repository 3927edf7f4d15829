package api

import (
	"fmt"
	"time"

	"github.com/kalshiwhale/tracker/internal/model"
)

// ParseTimestamp parses an ISO 8601 timestamp. Returns the zero time for
// empty or invalid input.
func ParseTimestamp(iso string) time.Time {
	if iso == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		// Try without timezone
		t, err = time.Parse("2006-01-02T15:04:05", iso)
		if err != nil {
			return time.Time{}
		}
	}

	return t
}

// ToModel converts an APITrade to model.Trade.
//
// The executed price is the taker-side price. A missing trade_id is
// synthesized from ticker+timestamp so every trade carries a unique ID.
func (t *APITrade) ToModel() model.Trade {
	created := ParseTimestamp(t.CreatedTime)

	price := t.YesPrice
	if t.TakerSide == "no" {
		price = t.NoPrice
	}

	id := t.TradeID
	if id == "" {
		id = fmt.Sprintf("%s-%d", t.Ticker, created.UnixNano())
	}

	return model.Trade{
		TradeID:     id,
		Ticker:      t.Ticker,
		Price:       price,
		Count:       t.Count,
		TakerSide:   t.TakerSide,
		CreatedTime: created,
	}
}

// ToModel converts an APIMarket to model.Market.
func (m *APIMarket) ToModel() model.Market {
	return model.Market{
		Ticker:       m.Ticker,
		EventTicker:  m.EventTicker,
		Title:        m.Title,
		Subtitle:     m.Subtitle,
		YesSubTitle:  m.YesSubTitle,
		NoSubTitle:   m.NoSubTitle,
		Category:     m.Category,
		Status:       m.Status,
		YesBid:       m.YesBid,
		YesAsk:       m.YesAsk,
		LastPrice:    m.LastPrice,
		Volume:       m.Volume,
		Volume24h:    m.Volume24h,
		OpenInterest: m.OpenInterest,
		OpenTime:     ParseTimestamp(m.OpenTime),
		CloseTime:    ParseTimestamp(m.CloseTime),
		Source:       "market",
	}
}

// ToModel converts an event record into the same market-metadata shape the
// resolver hands out, so the event fallback path is transparent to the
// pipeline. Prices and volume come from the first nested market when the
// event carries any.
func (e *EventWithNested) ToModel(ticker string) model.Market {
	m := model.Market{
		Ticker:      ticker,
		EventTicker: e.EventTicker,
		Title:       e.Title,
		Subtitle:    e.SubTitle,
		Category:    e.Category,
		Status:      e.Status,
		Source:      "event",
	}

	if len(e.Markets) > 0 {
		nested := e.Markets[0]
		m.YesSubTitle = nested.YesSubTitle
		m.NoSubTitle = nested.NoSubTitle
		m.YesBid = nested.YesBid
		m.YesAsk = nested.YesAsk
		m.LastPrice = nested.LastPrice
		m.Volume = nested.Volume
		m.Volume24h = nested.Volume24h
		m.OpenInterest = nested.OpenInterest
		m.OpenTime = ParseTimestamp(nested.OpenTime)
		m.CloseTime = ParseTimestamp(nested.CloseTime)
	}

	return m
}
