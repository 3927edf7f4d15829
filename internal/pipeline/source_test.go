package pipeline

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/kalshiwhale/tracker/internal/api"
	"github.com/kalshiwhale/tracker/internal/model"
)

// fakeSource is an in-memory Source for pipeline tests.
type fakeSource struct {
	mu sync.Mutex

	// Trade pages served in order; pageErrs[i] fails page i instead.
	pages    [][]model.Trade
	cursors  []string // continuation cursor returned with each page
	pageErrs map[int]error
	page     int

	markets    map[string]model.Market
	marketErrs map[string]error
	events     map[string]model.Market
	eventErrs  map[string]error

	marketCalls atomic.Int32
	eventCalls  atomic.Int32
	pageCalls   atomic.Int32
}

var errNotFound = &api.APIError{StatusCode: http.StatusNotFound, Message: "Not Found"}

func (f *fakeSource) FetchTradePage(ctx context.Context, limit int, cursor string) ([]model.Trade, string, error) {
	f.pageCalls.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.page
	f.page++

	if err, ok := f.pageErrs[i]; ok {
		return nil, "", err
	}
	if i >= len(f.pages) {
		return nil, "", nil
	}

	next := ""
	if i < len(f.cursors) {
		next = f.cursors[i]
	}
	return f.pages[i], next, nil
}

func (f *fakeSource) FetchMarket(ctx context.Context, ticker string) (model.Market, error) {
	f.marketCalls.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.marketErrs[ticker]; ok {
		return model.Market{}, err
	}
	if m, ok := f.markets[ticker]; ok {
		return m, nil
	}
	return model.Market{}, errNotFound
}

func (f *fakeSource) FetchEvent(ctx context.Context, ticker string) (model.Market, error) {
	f.eventCalls.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.eventErrs[ticker]; ok {
		return model.Market{}, err
	}
	if m, ok := f.events[ticker]; ok {
		return m, nil
	}
	return model.Market{}, errors.New("event not found")
}

// reset rewinds the page counter so the same upstream data can be replayed.
func (f *fakeSource) reset() {
	f.mu.Lock()
	f.page = 0
	f.mu.Unlock()
}
