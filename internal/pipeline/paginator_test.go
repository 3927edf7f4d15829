package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/kalshiwhale/tracker/internal/model"
)

func trade(ticker string, count, price int) model.Trade {
	return model.Trade{Ticker: ticker, Count: count, Price: price}
}

func TestPaginator_Collect(t *testing.T) {
	t.Run("follows cursor until end of data", func(t *testing.T) {
		src := &fakeSource{
			pages: [][]model.Trade{
				{trade("A", 1, 50), trade("B", 2, 60)},
				{trade("C", 3, 70)},
			},
			cursors: []string{"page2", ""},
		}

		p := NewPaginator(src, 100, 5, nil)
		trades, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if len(trades) != 3 {
			t.Fatalf("len(trades) = %d, want 3", len(trades))
		}
		// Insertion order = page fetch order.
		if trades[0].Ticker != "A" || trades[2].Ticker != "C" {
			t.Errorf("order = %v, want A..C", []string{trades[0].Ticker, trades[1].Ticker, trades[2].Ticker})
		}
		if src.pageCalls.Load() != 2 {
			t.Errorf("pageCalls = %d, want 2", src.pageCalls.Load())
		}
	})

	t.Run("bounded pagination truncates a never-ending cursor", func(t *testing.T) {
		src := &fakeSource{
			pages: [][]model.Trade{
				{trade("A", 1, 50)}, {trade("B", 1, 50)}, {trade("C", 1, 50)},
				{trade("D", 1, 50)}, {trade("E", 1, 50)}, {trade("F", 1, 50)},
			},
			// Every page claims there is more.
			cursors: []string{"c1", "c2", "c3", "c4", "c5", "c6"},
		}

		p := NewPaginator(src, 100, 5, nil)
		trades, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if src.pageCalls.Load() != 5 {
			t.Errorf("pageCalls = %d, want 5 (page bound)", src.pageCalls.Load())
		}
		if len(trades) != 5 {
			t.Errorf("len(trades) = %d, want 5", len(trades))
		}
	})

	t.Run("mid-run failure keeps partial result", func(t *testing.T) {
		src := &fakeSource{
			pages:    [][]model.Trade{{trade("A", 1, 50)}},
			cursors:  []string{"page2"},
			pageErrs: map[int]error{1: errors.New("upstream 503")},
		}

		p := NewPaginator(src, 100, 5, nil)
		trades, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("Collect() error = %v, want partial success", err)
		}
		if len(trades) != 1 || trades[0].Ticker != "A" {
			t.Errorf("trades = %v, want the first page only", trades)
		}
	})

	t.Run("failure after an empty first page keeps the empty result", func(t *testing.T) {
		src := &fakeSource{
			pages:    [][]model.Trade{{}},
			cursors:  []string{"page2"},
			pageErrs: map[int]error{1: errors.New("upstream 503")},
		}

		p := NewPaginator(src, 100, 5, nil)
		trades, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("Collect() error = %v, want empty partial success", err)
		}
		if len(trades) != 0 {
			t.Errorf("len(trades) = %d, want 0", len(trades))
		}
	})

	t.Run("first-page failure is an error", func(t *testing.T) {
		src := &fakeSource{
			pageErrs: map[int]error{0: errors.New("upstream down")},
		}

		p := NewPaginator(src, 100, 5, nil)
		if _, err := p.Collect(context.Background()); err == nil {
			t.Fatal("Collect() error = nil, want systemic failure")
		}
	})

	t.Run("zero trades is a valid empty result", func(t *testing.T) {
		src := &fakeSource{pages: [][]model.Trade{{}}}

		p := NewPaginator(src, 100, 5, nil)
		trades, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if len(trades) != 0 {
			t.Errorf("len(trades) = %d, want 0", len(trades))
		}
	})
}
