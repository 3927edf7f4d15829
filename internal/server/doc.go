// Package server exposes the dashboard API over HTTP and WebSocket.
//
// Components:
//   - Server: HTTP routes for markets, top markets, whale alerts, status,
//     manual refresh, and health
//   - Hub: WebSocket fan-out with initial data replay and heartbeats
//   - middleware: CORS, security headers, and per-IP rate limiting
//
// Handlers read from a feed.Store and never block on the refresh pipeline;
// a manual refresh runs the pipeline once and reports the outcome.
package server
