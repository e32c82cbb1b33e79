// Package client talks to the remote side of the planner.
//
// # Overview
//
// The package provides:
//  1. The Client contract for the authoritative postcard store, and
//     GRPCClient, its gRPC implementation. Every call carries a request id
//     and is bounded by the configured request timeout; gRPC status codes
//     are mapped to sentinel errors.
//  2. The Generator contract for bulk generation, and HTTPGenerator, which
//     posts a phase to the generation endpoint and reports service failures
//     as *GenerationError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite database that holds editor backups.
//
// # Error Handling
//
// Callers match errors with errors.Is: ErrUnavailable for transport failures
// and deadlines, ErrNotFound for unknown ids, ErrInvalidArgument for
// server-side validation. Generation failures are matched with errors.As
// against *GenerationError.
package client
