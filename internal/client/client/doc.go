// Package client talks to the LiveJournal XML-RPC interface.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the three procedures a publisher needs: GetChallenge, PostEvent and
//     EditEvent.
//  2. A concrete XML-RPC implementation (see XMLRPCClient) that encodes
//     requests with github.com/kolo/xmlrpc, POSTs them to the configured
//     endpoint and decodes the reply or fault.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI credential cache, wiring an SQLite database and applying
//     embedded goose migrations.
//
// # Error Handling
//
// A fault reply is returned as *Fault, which also matches ErrFault with
// errors.Is. Connection failures, timeouts and non-2xx statuses match
// ErrUnavailable; undecodable replies match ErrMalformedReply. No call is
// retried.
//
// Concurrency & Contexts
//
// XMLRPCClient holds no per-call state and is safe for concurrent use. Every
// call honors ctx and is additionally bounded by WithTimeout.
//
// See Also
//
//   - Interface:  Client
//   - XML-RPC:    XMLRPCClient
//   - DB helpers: InitDatabase, RunMigrations
//   - Errors:     ErrUnavailable, ErrFault, ErrMalformedReply
package client
