package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/ytbak/internal/shared"
)

const (
	defaultYTBaseURL   = "https://www.googleapis.com/youtube/v3"
	defaultYTPageSize  = 50
	youtubeServiceName = "YouTube"
)

// YouTubeService implements [Service] against the YouTube Data API v3.
type YouTubeService struct {
	baseURL    string
	pageSize   int
	tokens     TokenProvider
	httpClient *http.Client
}

// YouTubeOpts contains configuration options for creating a YouTubeService.
type YouTubeOpts struct {
	BaseURL    string
	PageSize   int // items requested per page, defaults to 50
	Tokens     TokenProvider
	HTTPClient *http.Client
}

// NewYouTubeService creates a new YouTube Data API client.
func NewYouTubeService(opts YouTubeOpts) *YouTubeService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYTBaseURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultYTPageSize
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &YouTubeService{
		baseURL:    opts.BaseURL,
		pageSize:   opts.PageSize,
		tokens:     opts.Tokens,
		httpClient: opts.HTTPClient,
	}
}

// Name returns the provider name.
func (y *YouTubeService) Name() string {
	return youtubeServiceName
}

type ytSnippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	PlaylistID   string `json:"playlistId"`
}

type ytResource struct {
	ID      string    `json:"id"`
	Snippet ytSnippet `json:"snippet"`
}

type ytListResponse struct {
	Items         []ytResource `json:"items"`
	NextPageToken *string      `json:"nextPageToken"`
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	token, err := y.tokens.Token(ctx)
	if err != nil {
		return err
	}

	apiURL := fmt.Sprintf("%s%s?%s", y.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRemoteRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrRemoteRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrRemoteRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (y *YouTubeService) pageParams(params url.Values, cursor *Cursor) url.Values {
	params.Set("maxResults", strconv.Itoa(y.pageSize))
	if cursor != nil {
		params.Set("pageToken", string(*cursor))
	}
	return params
}

func nextCursor(token *string) *Cursor {
	if token == nil || *token == "" {
		return nil
	}
	c := Cursor(*token)
	return &c
}

// MyChannelID resolves the authenticated user's channel id.
//
// Calls GET /channels?part=id&mine=true.
func (y *YouTubeService) MyChannelID(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("mine", "true")

	var resp ytListResponse
	if err := y.doRequest(ctx, "/channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("%w: no channel for authenticated user", shared.ErrRemoteRequest)
	}

	return resp.Items[0].ID, nil
}

// PlaylistsPage retrieves one page of the channel's playlists.
//
// Calls GET /playlists?part=snippet&channelId={id}.
func (y *YouTubeService) PlaylistsPage(ctx context.Context, channelID string, cursor *Cursor) (Page[PlaylistSummary], error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)

	var resp ytListResponse
	if err := y.doRequest(ctx, "/playlists", y.pageParams(params, cursor), &resp); err != nil {
		return Page[PlaylistSummary]{}, err
	}

	summaries := make([]PlaylistSummary, len(resp.Items))
	for i, item := range resp.Items {
		summaries[i] = PlaylistSummary{ID: item.ID, Title: item.Snippet.Title}
	}

	return Page[PlaylistSummary]{Items: summaries, Next: nextCursor(resp.NextPageToken)}, nil
}

// Playlist retrieves metadata for a single playlist.
//
// Calls GET /playlists?part=snippet&id={id}. An empty result set means the
// playlist does not exist or is not visible, reported as
// [shared.ErrPlaylistNotFound].
func (y *YouTubeService) Playlist(ctx context.Context, playlistID string) (*PlaylistInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", playlistID)

	var resp ytListResponse
	if err := y.doRequest(ctx, "/playlists", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	item := resp.Items[0]
	return &PlaylistInfo{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
	}, nil
}

// PlaylistItemsPage retrieves one page of a playlist's entries.
//
// Calls GET /playlistItems?part=snippet&playlistId={id}. Each entry records
// the entry title and the playlist it was fetched from.
func (y *YouTubeService) PlaylistItemsPage(ctx context.Context, playlistID string, cursor *Cursor) (Page[Item], error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)

	var resp ytListResponse
	if err := y.doRequest(ctx, "/playlistItems", y.pageParams(params, cursor), &resp); err != nil {
		return Page[Item]{}, err
	}

	items := make([]Item, len(resp.Items))
	for i, entry := range resp.Items {
		items[i] = Item{Title: entry.Snippet.Title, ListID: entry.Snippet.PlaylistID}
	}

	return Page[Item]{Items: items, Next: nextCursor(resp.NextPageToken)}, nil
}
