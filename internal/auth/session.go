package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytbak/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL        = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL       = "https://oauth2.googleapis.com/token"
	defaultIntrospectURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"

	scopeYouTubeReadonly = "https://www.googleapis.com/auth/youtube.readonly"
)

// State enumerates the credential lifecycle states of a [Session].
type State int

const (
	NoClient State = iota
	HasStoredCredential
	Validating
	Valid
	Invalid
	AwaitingUserAuthorization
	Exchanging
)

func (s State) String() string {
	switch s {
	case NoClient:
		return "no_client"
	case HasStoredCredential:
		return "has_stored_credential"
	case Validating:
		return "validating"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case AwaitingUserAuthorization:
		return "awaiting_user_authorization"
	case Exchanging:
		return "exchanging"
	default:
		return ""
	}
}

// clientIdentity mirrors the client_secret.json file issued for installed
// applications.
type clientIdentity struct {
	Installed struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		RedirectURIs []string `json:"redirect_uris"`
	} `json:"installed"`
}

// Session implements the credential validation/refresh state machine.
type Session struct {
	mu            sync.Mutex
	state         State
	config        *oauth2.Config
	token         *oauth2.Token
	store         *TokenStore
	secretPath    string
	introspectURL string
	endpoint      oauth2.Endpoint
	httpClient    *http.Client
	logger        *log.Logger
}

// SessionOpts contains configuration options for creating a Session.
type SessionOpts struct {
	ClientSecretPath string
	Store            *TokenStore
	IntrospectURL    string          // defaults to the Google tokeninfo endpoint
	Endpoint         oauth2.Endpoint // defaults to the Google OAuth2 endpoint
	HTTPClient       *http.Client
	Logger           *log.Logger
}

// NewSession creates a Session in the NoClient state.
func NewSession(opts SessionOpts) *Session {
	if opts.IntrospectURL == "" {
		opts.IntrospectURL = defaultIntrospectURL
	}
	if opts.Endpoint.AuthURL == "" {
		opts.Endpoint = oauth2.Endpoint{AuthURL: googleAuthURL, TokenURL: googleTokenURL}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Session{
		state:         NoClient,
		store:         opts.Store,
		secretPath:    opts.ClientSecretPath,
		introspectURL: opts.IntrospectURL,
		endpoint:      opts.Endpoint,
		httpClient:    opts.HTTPClient,
		logger:        opts.Logger,
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AuthURL returns the consent URL the user must visit to authorize access.
// The state token is echoed back on the redirect; callers running a callback
// server validate it, the manual paste flow may pass an empty string.
func (s *Session) AuthURL(state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureClientLocked(); err != nil {
		return "", err
	}

	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// EnsureValid produces a token guaranteed valid for the next remote call,
// hiding whether that required reuse, validation, or a prior authorization.
//
// When no usable token exists the session transitions to
// AwaitingUserAuthorization and a wrapped [shared.ErrAuthorizationRequired]
// is returned; the caller is expected to send the user to [Session.AuthURL]
// and later call [Session.CompleteAuthorization].
func (s *Session) EnsureValid(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureClientLocked(); err != nil {
		return nil, err
	}

	if s.state == Valid && s.token != nil {
		return s.token, nil
	}

	token, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if token == nil {
		s.state = AwaitingUserAuthorization
		return nil, fmt.Errorf("%w: no stored credential", shared.ErrAuthorizationRequired)
	}

	s.state = HasStoredCredential
	s.state = Validating

	valid, err := s.introspect(ctx, token.AccessToken)
	if err != nil {
		// Validation abandoned; the next external trigger starts over.
		s.state = NoClient
		s.token = nil
		return nil, fmt.Errorf("%w: token introspection: %v", shared.ErrRemoteRequest, err)
	}
	if !valid {
		s.logger.Info("stored token rejected by introspection", "state", AwaitingUserAuthorization)
		s.state = AwaitingUserAuthorization
		s.token = nil
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthorizationRequired, shared.ErrTokenInvalid)
	}

	s.state = Valid
	s.token = token
	return token, nil
}

// CompleteAuthorization exchanges a user-supplied authorization code for a
// token, persists it (overwriting any prior record), and marks the session
// Valid. On failure the session stays AwaitingUserAuthorization so the caller
// can re-prompt for a code.
func (s *Session) CompleteAuthorization(ctx context.Context, code string) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureClientLocked(); err != nil {
		return nil, err
	}

	s.state = Exchanging

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		s.state = AwaitingUserAuthorization
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthorizationExchange, err)
	}

	if err := s.store.Save(token); err != nil {
		s.state = AwaitingUserAuthorization
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	s.logger.Info("authorization complete", "token_path", s.store.Path())
	s.state = Valid
	s.token = token
	return token, nil
}

// Token implements the token provider contract consumed by the API client.
func (s *Session) Token(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	if s.state == Valid && s.token != nil {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()

	return s.EnsureValid(ctx)
}

// Invalidate discards the in-memory credential, forcing the next consumer
// through validation again.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	if s.state == Valid {
		s.state = Invalid
	}
}

// ensureClientLocked constructs the OAuth client identity once per process.
// Callers must hold s.mu.
func (s *Session) ensureClientLocked() error {
	if s.config != nil {
		return nil
	}

	data, err := os.ReadFile(s.secretPath)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}

	var identity clientIdentity
	if err := json.Unmarshal(data, &identity); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}
	if identity.Installed.ClientID == "" || identity.Installed.ClientSecret == "" {
		return fmt.Errorf("%w: client_secret.json is missing client_id or client_secret", shared.ErrMissingCredentials)
	}

	redirectURL := ""
	if len(identity.Installed.RedirectURIs) > 0 {
		redirectURL = identity.Installed.RedirectURIs[0]
	}

	s.config = &oauth2.Config{
		ClientID:     identity.Installed.ClientID,
		ClientSecret: identity.Installed.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{scopeYouTubeReadonly},
		Endpoint:     s.endpoint,
	}

	return nil
}

// introspect asks the tokeninfo endpoint whether the access token is usable.
// Returns false only when the remote explicitly reports invalid_token.
func (s *Session) introspect(ctx context.Context, accessToken string) (bool, error) {
	introspectURL := fmt.Sprintf("%s?access_token=%s", s.introspectURL, url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, introspectURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var info struct {
		Error string `json:"error"`
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	if info.Error == "invalid_token" {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("tokeninfo status %d: %s", resp.StatusCode, info.Error)
	}

	return true, nil
}
