package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytbak/internal/services"
)

var _ list.Item = playlistItem{}

// playlistItem wraps [services.PlaylistSummary] to implement [list.Item],
// carrying its selection state for checkbox rendering.
type playlistItem struct {
	summary  services.PlaylistSummary
	selected bool
}

func (i playlistItem) FilterValue() string { return i.summary.Title }

func (i playlistItem) Title() string {
	box := "[ ]"
	if i.selected {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s", box, i.summary.Title)
}

func (i playlistItem) Description() string {
	return i.summary.ID
}
