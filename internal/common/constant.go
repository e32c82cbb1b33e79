// Package common holds identifiers and sentinel errors shared by the
// planner client and the reference server.
package common

// RequestIDHeaderName is the gRPC metadata key that carries a per-call id,
// logged on both sides of the connection.
const RequestIDHeaderName = "x-request-id"
