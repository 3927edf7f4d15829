// Package model defines shared data types used across the whale tracker.
//
// Conventions:
//   - Prices: integer cents (0-100 = $0.00-$1.00)
//   - Timestamps: time.Time, serialized as RFC 3339
//   - IDs: string tickers; trade IDs come from the upstream feed and are
//     synthesized from ticker+timestamp when the feed omits them
package model
