// Package services defines the provider contract for remote playlist data
// and the generic page collector that drains paginated endpoints.
//
// # Service
//
// [Service] abstracts a provider that exposes the user's channel, their
// playlists, per-playlist metadata, and playlist items, all behind opaque
// page cursors. [YouTubeService] is the production implementation against
// the YouTube Data API v3; tests substitute their own.
//
// # Pagination
//
// [Collect] drives a cursor loop to completion: it calls the fetch function
// with a nil cursor first, then follows each returned cursor until a page
// comes back without one. Items accumulate in arrival order. Termination is
// decided solely by cursor presence, never by page emptiness, so a provider
// may return empty intermediate pages without ending the walk early.
package services
