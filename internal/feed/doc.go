// Package feed exposes read-only views over the latest refresh cycle's
// output: the markets view, the top-markets view, and the whale alerts view.
//
// The Store guards against the stale-cycle overwrite hazard: overlapping
// refresh cycles publish with monotonically increasing sequence numbers and
// only the highest sequence seen wins, regardless of completion order.
package feed
