// Package auth owns the credential lifecycle for the YouTube Data API.
//
// # Token Storage
//
// [TokenStore] persists a single bearer token record as JSON on disk, mirroring
// the raw token-response shape. The record is overwritten on every successful
// (re)authorization. Writes are plain file writes with no atomic rename; a
// crash mid-write corrupts the record and the next run falls back to the
// authorization flow.
//
// # Session State Machine
//
// [Session] turns a stored or freshly exchanged token into a validated,
// usable credential:
//
//	NoClient → HasStoredCredential → Validating → {Valid, Invalid}
//	Invalid → AwaitingUserAuthorization → Exchanging → Valid
//
// [Session.EnsureValid] drives the left half: it lazily constructs the OAuth
// client identity from client_secret.json (at most once per process), loads
// any persisted token, and introspects it against the tokeninfo endpoint.
// A missing or rejected token parks the session in AwaitingUserAuthorization
// and surfaces [shared.ErrAuthorizationRequired]; [Session.AuthURL] then
// yields the consent URL (youtube.readonly scope, offline access type).
//
// [Session.CompleteAuthorization] drives the right half: it exchanges a
// user-supplied authorization code, persists the new token, and marks the
// session Valid. Exchange failures leave the session awaiting a fresh code.
//
// All transitions are serialized by a mutex, so a renewal in progress blocks
// other consumers instead of racing them. There is exactly one live
// credential per process.
package auth
