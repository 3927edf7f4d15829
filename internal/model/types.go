package model

import "time"

// -----------------------------------------------------------------------------
// Upstream Records
// -----------------------------------------------------------------------------

// Trade represents one executed order match on a single market. Trades are
// immutable after ingestion and are read once per refresh cycle.
type Trade struct {
	TradeID     string    // Upstream trade ID, or "<ticker>-<unixnano>" if absent
	Ticker      string    // Market ticker
	Price       int       // Executed price in cents (0-100)
	Count       int       // Number of contracts matched
	TakerSide   string    // "yes" or "no"
	CreatedTime time.Time // Trade execution time
}

// Market holds descriptive, slow-changing metadata about a single market.
// The resolver's lookup table owns these for the duration of one refresh
// cycle; they are discarded and rebuilt on the next.
type Market struct {
	Ticker      string // Primary key (e.g., "KXBTCD-25AUG26-T64000")
	EventTicker string // Parent event ticker
	Title       string // Display title
	Subtitle    string // Optional subtitle
	YesSubTitle string // Label for the YES outcome
	NoSubTitle  string // Label for the NO outcome
	Category    string // Category (e.g., "Crypto")
	Status      string // Lifecycle status (open, closed, settled, ...)

	// Current prices in cents
	YesBid    int
	YesAsk    int
	LastPrice int

	// Volume
	Volume       int64 // Total volume
	Volume24h    int64 // 24-hour volume
	OpenInterest int64 // Open interest

	// Lifecycle
	OpenTime  time.Time
	CloseTime time.Time

	// Source records which upstream lookup produced this record:
	// "market", or "event" for the not-found fallback path.
	Source string
}

// -----------------------------------------------------------------------------
// Fused Output
// -----------------------------------------------------------------------------

// Rollup is the fused, per-market aggregate that one refresh cycle produces.
// A Rollup exists only when at least one trade referenced the ticker AND the
// ticker resolved successfully; it is never persisted and is superseded
// wholesale by the next cycle's output.
type Rollup struct {
	Ticker        string    `json:"ticker"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	LastPrice     int       `json:"last_price"`
	Volume        int64     `json:"volume"`
	LastUpdated   time.Time `json:"last_updated"`
	Status        string    `json:"status"`
	OpenTime      time.Time `json:"open_time"`
	CloseTime     time.Time `json:"close_time"`
	WhaleActivity bool      `json:"whale_activity"`

	// Pass-through display fields
	YesSubTitle string `json:"yes_sub_title,omitempty"`
	NoSubTitle  string `json:"no_sub_title,omitempty"`
	YesBid      int    `json:"yes_bid"`
	YesAsk      int    `json:"yes_ask"`
}

// Snapshot is the output of one complete refresh cycle. Seq increases
// monotonically across cycles within a process; the feed store only accepts
// a snapshot whose Seq is the highest it has seen.
type Snapshot struct {
	Markets   []Rollup  `json:"markets"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
	Seq       uint64    `json:"-"`
}

// Alert is one whale alert derived from a whale-flagged rollup.
type Alert struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Ticker      string    `json:"ticker"`
	Severity    string    `json:"severity"`
	Confidence  int       `json:"confidence"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
