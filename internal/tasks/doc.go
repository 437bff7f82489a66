// Package tasks orchestrates playlist backup runs with real-time progress
// reporting.
//
// # Core Operations
//
// [BackupEngine] exposes three operations:
//
//  1. [BackupEngine.ListPlaylists] : Enumerate the user's playlists
//     - Resolves the authenticated channel
//     - Drains the paginated playlists endpoint
//     - Returns summaries sorted case-insensitively by title
//
//  2. [BackupEngine.BackupSelected] : Back up a chosen set of playlists
//     - Launches one job per playlist id
//     - Each job fetches metadata, drains the items pages, and writes the
//       backup file
//     - Waits for all jobs to report completion, bounded by the run deadline
//
//  3. [BackupEngine.BackupAll] : Back up every playlist on the channel
//
// # Completion and the Deadline
//
// A run resolves AllComplete when every job has reported, or TimedOut when
// the deadline passes first. Jobs are not cancelled on timeout: they run on
// the caller's context and may finish their writes after the run has already
// resolved. The summaries returned with a TimedOut run cover only the jobs
// that reported in time.
//
// # Progress Reporting
//
// All operations accept an optional progress channel. Updates are sent with
// select and a default branch, so a slow or absent consumer never blocks a
// backup.
package tasks
