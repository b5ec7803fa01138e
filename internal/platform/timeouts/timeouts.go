// Package timeouts defines shared timeout constants used across the server.
// Centralizing these values prevents drift between layers and makes the
// durations discoverable.
package timeouts

import "time"

// BridgeCall caps the time allowed for a single REAPER round-trip issued by
// an MCP tool handler, including the ExtState handshake.
const BridgeCall = 5 * time.Second

// BridgeProbe caps the initial reachability check against REAPER's web
// interface during lazy connect.
const BridgeProbe = 2 * time.Second

// BridgePoll is the interval between response-mailbox polls while a bridge
// call is in flight.
const BridgePoll = 15 * time.Millisecond
