package feed

import (
	"sort"
	"time"

	"github.com/kalshiwhale/tracker/internal/model"
)

// MarketsResponse is the markets view: the cycle's output verbatim, with a
// timestamp marking when the cycle ran.
type MarketsResponse struct {
	Markets   []model.Rollup `json:"markets"`
	Count     int            `json:"count"`
	Timestamp time.Time      `json:"timestamp"`
}

// Markets returns the markets view of a snapshot.
func Markets(snap *model.Snapshot) MarketsResponse {
	return MarketsResponse{
		Markets:   snap.Markets,
		Count:     snap.Count,
		Timestamp: snap.Timestamp,
	}
}

// Outcome is one side of a binary market in the detailed top-5 view.
type Outcome struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
}

// DetailedMarket is the dashboard-card reshape of a rollup: question text,
// derived YES/NO probabilities from the last traded price, and activity
// flags.
type DetailedMarket struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Category      string    `json:"category"`
	LastUpdate    time.Time `json:"last_update"`
	Volume        int64     `json:"volume"`
	Trending      bool      `json:"trending"`
	Outcomes      []Outcome `json:"outcomes"`
	HighVolume    bool      `json:"high_volume"`
	Status        string    `json:"status"`
	Ticker        string    `json:"ticker"`
	WhaleActivity bool      `json:"whale_activity"`
}

// DetailedMarketsResponse is the detailed top-5 view.
type DetailedMarketsResponse struct {
	Markets   []DetailedMarket `json:"markets"`
	Count     int              `json:"count"`
	Timestamp time.Time        `json:"timestamp"`
}

const top5Limit = 5

// Top5Detailed returns the five highest-volume rollups reshaped into
// dashboard cards. highVolumeMin is the cumulative-volume floor used for
// the trending and high_volume flags.
func Top5Detailed(snap *model.Snapshot, highVolumeMin int64) DetailedMarketsResponse {
	top := TopMarkets(snap, top5Limit)

	markets := make([]DetailedMarket, 0, len(top.Markets))
	for _, r := range top.Markets {
		yes := float64(r.LastPrice) / 100.0

		markets = append(markets, DetailedMarket{
			ID:         r.Ticker,
			Question:   r.Title,
			Category:   r.Category,
			LastUpdate: r.LastUpdated,
			Volume:     r.Volume,
			Trending:   r.Volume > highVolumeMin,
			Outcomes: []Outcome{
				{Title: "YES", Description: "YES outcome", Probability: yes},
				{Title: "NO", Description: "NO outcome", Probability: 1 - yes},
			},
			HighVolume:    r.Volume > highVolumeMin,
			Status:        r.Status,
			Ticker:        r.Ticker,
			WhaleActivity: r.WhaleActivity,
		})
	}

	return DetailedMarketsResponse{
		Markets:   markets,
		Count:     len(markets),
		Timestamp: snap.Timestamp,
	}
}

// TopMarkets returns the n highest-volume rollups of a snapshot, sorted by
// cumulative volume descending. The snapshot itself is not reordered.
func TopMarkets(snap *model.Snapshot, n int) MarketsResponse {
	sorted := make([]model.Rollup, len(snap.Markets))
	copy(sorted, snap.Markets)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Volume > sorted[j].Volume
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return MarketsResponse{
		Markets:   sorted,
		Count:     len(sorted),
		Timestamp: snap.Timestamp,
	}
}
