// Package cli provides the interactive ESL Manager console.
//
// It wires configuration, the local database, the REST client and the
// session into a REPL. Each entity screen of the web console (stores,
// products, ESLs, gateways, users, sync logs) becomes a view the operator
// switches to with "use"; the list is searched, filtered, sorted, paged and
// selected with commands, and entities are added or edited through prompted
// forms. A background watcher pings the backend and flips the prompt between
// online and offline.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
