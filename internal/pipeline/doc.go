// Package pipeline implements one refresh cycle of the whale tracker:
// paginate the upstream trade feed, resolve each referenced market's
// metadata with concurrent fail-tolerant lookups, fold trades into
// per-market rollups, and flag whale trades against a cycle-relative
// notional threshold.
//
// All intermediate state (trade accumulator, resolver lookup table, rollup
// map) is owned exclusively by one cycle's execution and rebuilt from
// scratch on the next.
package pipeline
