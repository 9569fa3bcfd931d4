// Package client is the HTTP client for the despesas backend.
//
// # Overview
//
// Every call goes through a chain of Middleware around a Doer:
//
//  1. WithLogging logs method, URL, status and duration.
//  2. WithBreaker rejects endpoints blocked after repeated 404s without
//     touching the network, and records new 404s.
//  3. WithSession hands a 401 from anything but the login endpoint to a
//     SessionHandler, which clears credentials and redirects to /login.
//  4. WithAuth attaches the bearer token.
//
// # Error Handling
//
// Non-2xx replies and transport failures are returned as *APIError. Each
// carries the method, path, status, a user-facing message and the decoded
// payload, and matches one sentinel with errors.Is: ErrInvalidCredentials,
// ErrSessionExpired, ErrEndpointNotFound, ErrEndpointBlocked, ErrUnavailable,
// ErrRequestFailed or ErrUnexpectedResponse. Nothing is retried.
package client
