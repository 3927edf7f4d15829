package feed

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kalshiwhale/tracker/internal/model"
)

// AlertTypeWhaleTrade is the fixed category tag on whale alerts.
const AlertTypeWhaleTrade = "whale_trade"

// Severity and confidence are fixed placeholders for now; alert scoring is
// not differentiated by the magnitude of the notional excess.
const (
	alertSeverity   = "medium"
	alertConfidence = 80
)

// AlertsResponse is the whale alerts view.
type AlertsResponse struct {
	Alerts            []model.Alert   `json:"alerts"`
	Count             int             `json:"count"`
	WhaleSignalsCount int             `json:"whale_signals_count"`
	HighVolumeCount   int             `json:"high_volume_count"`
	DetectionTypes    map[string]bool `json:"detection_types"`
	Thresholds        Thresholds      `json:"thresholds"`
	Timestamp         time.Time       `json:"timestamp"`
}

// Thresholds describes the detection configuration. These are static
// descriptors of how detection works, not per-cycle computed values.
type Thresholds struct {
	WhaleNotionalFraction float64 `json:"whale_notional_fraction"`
	HighVolumeMinimum     int64   `json:"high_volume_minimum"`
}

// AlertsConfig holds the whale alerts view configuration.
type AlertsConfig struct {
	WhaleFraction     float64 // Fraction used by the pipeline's threshold
	HighVolumeMinimum int64   // Cumulative-volume floor for "high volume"
}

// alertID derives a stable identifier for a whale signal. The same rollup
// in the same cycle always yields the same ID, so clients can deduplicate
// alerts seen across HTTP reads and WebSocket frames.
func alertID(ticker string, seq uint64) string {
	name := fmt.Sprintf("%s/%s/%d", AlertTypeWhaleTrade, ticker, seq)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Alerts builds the whale alerts view from a snapshot: one alert per
// whale-flagged rollup, reshaped for alerting.
func Alerts(snap *model.Snapshot, cfg AlertsConfig) AlertsResponse {
	alerts := make([]model.Alert, 0)
	highVolume := 0

	for _, r := range snap.Markets {
		if r.Volume > cfg.HighVolumeMinimum {
			highVolume++
		}
		if !r.WhaleActivity {
			continue
		}

		alerts = append(alerts, model.Alert{
			ID:          alertID(r.Ticker, snap.Seq),
			Type:        AlertTypeWhaleTrade,
			Ticker:      r.Ticker,
			Severity:    alertSeverity,
			Confidence:  alertConfidence,
			Description: fmt.Sprintf("Whale-sized trade detected on %q", r.Title),
			Timestamp:   r.LastUpdated,
		})
	}

	return AlertsResponse{
		Alerts:            alerts,
		Count:             len(alerts),
		WhaleSignalsCount: len(alerts),
		HighVolumeCount:   highVolume,
		DetectionTypes: map[string]bool{
			AlertTypeWhaleTrade: true,
			"high_volume":       true,
		},
		Thresholds: Thresholds{
			WhaleNotionalFraction: cfg.WhaleFraction,
			HighVolumeMinimum:     cfg.HighVolumeMinimum,
		},
		Timestamp: snap.Timestamp,
	}
}
