// Package reascript binds the reaper.Client capability interface to a live
// REAPER instance.
//
// REAPER exposes no remote procedure surface of its own beyond the built-in
// web interface, so the binding is split in two halves: a deferred
// ReaScript (bridge.lua, embedded here and installed by Installer) runs
// inside REAPER and dispatches to the reaper.* API, while the Go side
// exchanges JSON envelopes with it through a project ExtState mailbox via
// web-interface GET requests.
//
// Connecting is lazy: the first call probes the bridge and, when it is
// missing, performs the one-time configuration step. That step writes files
// under the REAPER resource directory: the bridge script itself and a
// __startup.lua registration line. The side effect is deliberate and
// visible to the user.
package reascript
