// Package cli provides the interactive JotMe command-line client.
//
// It wires configuration, local settings storage, the identity provider, the
// backend resources and the view models behind a small REPL. On start it
// silently restores the previous sign-in; afterwards the user can jot,
// browse history and reminders, complete reminders, and ask questions
// about past jots.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
