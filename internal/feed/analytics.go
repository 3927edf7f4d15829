package feed

import (
	"sort"
	"time"

	"github.com/kalshiwhale/tracker/internal/model"
)

const (
	mostActiveLimit = 5
	recentLimit     = 5
)

// AnalyticsResponse is the whale analytics view: aggregate counts over the
// snapshot's detection signals.
type AnalyticsResponse struct {
	TotalWhaleSignals int            `json:"total_whale_signals"`
	SignalTypes       map[string]int `json:"signal_types"`
	MostActiveMarkets map[string]int `json:"most_active_markets"`
	RecentActivity    []model.Alert  `json:"recent_activity"`
	Timestamp         time.Time      `json:"timestamp"`
}

// Analytics aggregates the snapshot's whale and high-volume signals: totals
// by signal type, the most signal-active markets, and the most recent
// alerts.
func Analytics(snap *model.Snapshot, cfg AlertsConfig) AnalyticsResponse {
	signalTypes := make(map[string]int)
	activity := make(map[string]int)

	view := Alerts(snap, cfg)
	for _, a := range view.Alerts {
		signalTypes[a.Type]++
		activity[a.Ticker]++
	}
	for _, r := range snap.Markets {
		if r.Volume > cfg.HighVolumeMinimum {
			signalTypes["high_volume"]++
			activity[r.Ticker]++
		}
	}

	total := 0
	for _, n := range signalTypes {
		total += n
	}

	return AnalyticsResponse{
		TotalWhaleSignals: total,
		SignalTypes:       signalTypes,
		MostActiveMarkets: topActivity(activity, mostActiveLimit),
		RecentActivity:    recentAlerts(view.Alerts, recentLimit),
		Timestamp:         snap.Timestamp,
	}
}

// topActivity keeps the n tickers with the most signals.
func topActivity(activity map[string]int, n int) map[string]int {
	tickers := make([]string, 0, len(activity))
	for t := range activity {
		tickers = append(tickers, t)
	}
	sort.Slice(tickers, func(i, j int) bool {
		if activity[tickers[i]] != activity[tickers[j]] {
			return activity[tickers[i]] > activity[tickers[j]]
		}
		return tickers[i] < tickers[j]
	})
	if len(tickers) > n {
		tickers = tickers[:n]
	}

	top := make(map[string]int, len(tickers))
	for _, t := range tickers {
		top[t] = activity[t]
	}
	return top
}

// recentAlerts keeps the n most recent alerts by timestamp.
func recentAlerts(alerts []model.Alert, n int) []model.Alert {
	recent := make([]model.Alert, len(alerts))
	copy(recent, alerts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
