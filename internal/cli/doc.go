// Package cli provides the interactive despesas terminal client.
//
// It drives the API services from a read-eval-print loop. The prompt shows
// the signed-in user, the selected month and the current screen. Commands
// that need a session first run the route guard, which sends the user to
// login or to the password change screen when required.
//
// Key features:
//   - Login / Logout / password change (passwords are read without echo)
//   - Entries, cards, invoices and credit card forecasts
//   - Dashboard and monthly planning
//   - Quick entry, assistant chat, Telegram linking and CSV export
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// A background watcher reports when the API becomes unavailable or returns.
package cli
