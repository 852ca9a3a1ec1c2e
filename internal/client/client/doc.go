// Package client talks to the graphauth server.
//
// GRPCClient manages the connection, attaches the access token granted by a
// successful login to every call, and maps gRPC status codes onto the
// sentinel errors of this package (ErrUnavailable, ErrUnauthorized,
// ErrRateLimited, ErrRejected, ErrNotFound, ErrLocked, ErrConflict) wrapped in
// a RemoteError that keeps the server's user-facing message.
package client
