// Package auth keeps the client's credentials and decides where a session may
// go.
//
// Store persists the bearer token, the must-change-password flag, the cached
// user and the one-shot login message in the local key/value table. Session
// combines a Store with a Navigator: it expires or ends a session and
// resolves protected locations the same way for every screen.
package auth
