// Package domain declares the MCP tool surface over the REAPER client
// capability interface: one Tool definition and one typed handler per
// exposed operation.
//
// Handlers validate argument ranges before touching the client, bound each
// REAPER round-trip with a timeout, and attach a correlation id to every
// tool result. Entity resolution (does this track index exist?) is the
// client's job; value-range checks live here.
package domain
