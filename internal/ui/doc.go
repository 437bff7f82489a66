// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist backup:
//  1. [SelectView] : Browse the channel's playlists and toggle selections
//  2. [ConfirmView] : Confirm the backup run
//  3. [BackupView] : Monitor real-time progress updates
//  4. [ResultView] : Display the run outcome, including timeout survivors
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the BackupEngine, providing non-blocking status reporting during runs.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
