// Package cli provides the interactive post planner command-line client.
//
// It wires configuration, the local backup database, the postcard and
// generation services, and an interactive REPL. A background watcher pings
// the server and reloads the collection when connectivity returns.
//
// Key features:
//   - List postcards and lay them out on a calendar
//   - Write and edit postcards with debounced autosave and local backup
//   - Approve, schedule and publish postcards
//   - Generate a whole phase of drafts at once
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
