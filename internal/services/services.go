package services

import (
	"context"
	"encoding/json"

	"golang.org/x/oauth2"
)

// TokenProvider yields a credential valid for the next remote call.
type TokenProvider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// PlaylistSummary identifies one of the user's playlists for listing and
// selection.
type PlaylistSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PlaylistInfo carries the metadata needed to name a playlist's backup file.
type PlaylistInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
}

// Item is a single playlist entry.
//
// On the wire it has two shapes: a bare string when only the title is known,
// or an object carrying the title and the source list id. Both forms decode
// into the same struct.
type Item struct {
	Title  string
	ListID string
}

type itemObject struct {
	Title  string `json:"title"`
	ListID string `json:"listId"`
}

// MarshalJSON emits a bare string when no list id is attached, otherwise the
// object form.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.ListID == "" {
		return json.Marshal(i.Title)
	}
	return json.Marshal(itemObject{Title: i.Title, ListID: i.ListID})
}

// UnmarshalJSON accepts both the bare-string and object forms.
func (i *Item) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		i.Title = title
		i.ListID = ""
		return nil
	}

	var obj itemObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	i.Title = obj.Title
	i.ListID = obj.ListID
	return nil
}

// Service defines the provider contract for playlist backup sources.
type Service interface {
	// MyChannelID resolves the authenticated user's channel id.
	MyChannelID(ctx context.Context) (string, error)

	// PlaylistsPage retrieves one page of the channel's playlists.
	PlaylistsPage(ctx context.Context, channelID string, cursor *Cursor) (Page[PlaylistSummary], error)

	// Playlist retrieves metadata for a single playlist.
	Playlist(ctx context.Context, playlistID string) (*PlaylistInfo, error)

	// PlaylistItemsPage retrieves one page of a playlist's entries.
	PlaylistItemsPage(ctx context.Context, playlistID string, cursor *Cursor) (Page[Item], error)

	// Name returns the provider name (e.g. "YouTube").
	Name() string
}
