// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/ytbak/internal/services"
)

// MockService is a configurable test double for [services.Service]. Unset
// function fields fall back to empty results.
type MockService struct {
	MyChannelIDFunc       func(ctx context.Context) (string, error)
	PlaylistsPageFunc     func(ctx context.Context, channelID string, cursor *services.Cursor) (services.Page[services.PlaylistSummary], error)
	PlaylistFunc          func(ctx context.Context, playlistID string) (*services.PlaylistInfo, error)
	PlaylistItemsPageFunc func(ctx context.Context, playlistID string, cursor *services.Cursor) (services.Page[services.Item], error)
}

func (m *MockService) MyChannelID(ctx context.Context) (string, error) {
	if m.MyChannelIDFunc != nil {
		return m.MyChannelIDFunc(ctx)
	}
	return "UCmock", nil
}

func (m *MockService) PlaylistsPage(ctx context.Context, channelID string, cursor *services.Cursor) (services.Page[services.PlaylistSummary], error) {
	if m.PlaylistsPageFunc != nil {
		return m.PlaylistsPageFunc(ctx, channelID, cursor)
	}
	return services.Page[services.PlaylistSummary]{}, nil
}

func (m *MockService) Playlist(ctx context.Context, playlistID string) (*services.PlaylistInfo, error) {
	if m.PlaylistFunc != nil {
		return m.PlaylistFunc(ctx, playlistID)
	}
	return &services.PlaylistInfo{ID: playlistID, Title: playlistID, ChannelTitle: "mock"}, nil
}

func (m *MockService) PlaylistItemsPage(ctx context.Context, playlistID string, cursor *services.Cursor) (services.Page[services.Item], error) {
	if m.PlaylistItemsPageFunc != nil {
		return m.PlaylistItemsPageFunc(ctx, playlistID, cursor)
	}
	return services.Page[services.Item]{}, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
