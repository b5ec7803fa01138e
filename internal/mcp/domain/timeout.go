package domain

import "github.com/dawctl/reaper-mcp/internal/platform/timeouts"

// bridgeCallTimeout bounds the REAPER round-trips of one tool invocation.
const bridgeCallTimeout = timeouts.BridgeCall
