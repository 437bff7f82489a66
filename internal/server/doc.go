// Package server provides HTTP routing, middleware, and the web surface for
// browsing and backing up playlists.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. The [BasicRouter] implementation uses
// [http.ServeMux] internally with method filtering.
//
// # Backup Handler
//
// [BackupHandler] serves the three-page backup flow:
//
//	GET  /          → playlist selection (or authorization prompt)
//	POST /authorize → exchange a pasted authorization code
//	POST /backup    → run the selected backups and render the result
//
// A request to / with no valid credential renders the authorization page
// instead of failing, so the browser flow and the credential lifecycle stay
// on the same surface.
//
// # Authorization Callback
//
// [CallbackHandler] receives the OAuth redirect for the localhost flow. It
// processes a single callback, completes the code exchange through the
// session, and delivers the result exactly once over a buffered channel so
// the waiting command can resume.
package server
