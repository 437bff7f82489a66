package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/ytbak/internal/server"
	"github.com/desertthunder/ytbak/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Init creates a starter configuration file.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	return r.writePlain("✓ Wrote %s\n", path)
}

// AuthURL prints the consent URL for the manual authorization flow.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	authURL, err := r.session.AuthURL("")
	if err != nil {
		return err
	}

	r.writePlain("Open this URL in your browser and approve access:\n%s\n\n", authURL)
	return r.writePlain("Then run: ytbak auth code <code>\n")
}

// AuthCode exchanges a pasted authorization code for a token.
func (r *Runner) AuthCode(ctx context.Context, cmd *cli.Command) error {
	code := cmd.StringArg("code")
	if code == "" {
		return fmt.Errorf("%w: authorization code", shared.ErrMissingArgument)
	}

	if _, err := r.session.CompleteAuthorization(ctx, code); err != nil {
		return err
	}

	return r.writePlain("✓ Authorization successful\n")
}

// AuthLogin runs the full browser flow with a local callback server. Any
// cached credential is discarded first; login always mints a fresh consent.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	r.session.Invalidate()

	token, err := r.doOAuth(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("authorization complete", "expires", token.Expiry)
	r.writePlain("✓ Authorization successful\n")
	return r.writePlain("You can now use: ytbak backup run\n")
}

// AuthStatus checks the stored credential against the tokeninfo endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking credential status")

	_, err := r.session.EnsureValid(ctx)
	switch {
	case err == nil:
		return r.writePlain("✓ Credential valid (state: %s)\n", r.session.State())
	case errors.Is(err, shared.ErrAuthorizationRequired):
		r.writePlain("✗ Authorization required (state: %s)\n", r.session.State())
		return r.writePlain("Run: ytbak auth login\n")
	default:
		return err
	}
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL, err := r.session.AuthURL(state)
	if err != nil {
		return nil, err
	}

	callback := server.NewCallbackHandler(func(code string) (*oauth2.Token, error) {
		return r.session.CompleteAuthorization(ctx, code)
	}, state)
	router := server.NewBasicRouter()
	router.Handler(callback)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult
	select {
	case result = <-callback.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("callback server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	return result.Token, nil
}
