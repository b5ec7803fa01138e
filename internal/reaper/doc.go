// Package reaper defines the capability surface of a controlled REAPER
// instance: plain descriptor shapes for project, track, item, FX, and
// marker state, and the Client interface every transport binding
// implements.
//
// Descriptors are request-scoped snapshots. The adapter never caches them;
// every read re-queries REAPER, which stays the single source of truth.
package reaper
