// Package gmail sends dashboard replies through the Gmail REST API,
// refreshing the stored OAuth token when it has expired.
package gmail

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// SendRequest carries one outbound reply. ThreadID and References are
// optional; the rest are required and validated by the HTTP handler before
// a Client is ever invoked.
type SendRequest struct {
	To         string
	Subject    string
	Message    string
	ThreadID   string
	References string
}

// Sender sends one reply through the mail provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (*gmailv1.Message, error)
}

// Client is the production Sender. It re-reads the token file on every
// send rather than caching credentials in memory; the file is the source of
// truth and concurrent refreshes are last-writer-wins, which is safe
// because each refreshed token is independently valid.
type Client struct {
	tokenPath string
	oauth     oauth2.Config
	apiOpts   []option.ClientOption
	now       func() time.Time
}

// Option configures a Client. Used by tests to point the OAuth and Gmail
// endpoints at local servers.
type Option func(*Client)

// WithTokenEndpoint overrides the OAuth token refresh URL.
func WithTokenEndpoint(url string) Option {
	return func(c *Client) {
		c.oauth.Endpoint = oauth2.Endpoint{TokenURL: url}
	}
}

// WithAPIOptions appends options for the Gmail API service, such as
// option.WithEndpoint to target a test server.
func WithAPIOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.apiOpts = append(c.apiOpts, opts...)
	}
}

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client reading its token from tokenPath and
// authenticating with the given OAuth client credentials.
func NewClient(tokenPath, clientID, clientSecret, redirectURL string, opts ...Option) *Client {
	c := &Client{
		tokenPath: tokenPath,
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send builds the raw reply message and submits it under the authenticated
// identity, refreshing the stored token first if its expiry has passed.
func (c *Client) Send(ctx context.Context, req SendRequest) (*gmailv1.Message, error) {
	tok, err := c.freshToken(ctx)
	if err != nil {
		return nil, err
	}

	svcOpts := append([]option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(tok)),
	}, c.apiOpts...)
	svc, err := gmailv1.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	msg := &gmailv1.Message{
		Raw: EncodeMessage(BuildReplyMessage(req)),
	}
	if req.ThreadID != "" {
		msg.ThreadId = req.ThreadID
	}

	sent, err := svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	log.Printf("Gmail: sent reply to %s (message id %s)", req.To, sent.Id)
	return sent, nil
}

// freshToken loads the stored token and refreshes it if expired, persisting
// the refreshed credential back to disk. The original refresh token is kept
// when the provider does not return a new one.
func (c *Client) freshToken(ctx context.Context) (*oauth2.Token, error) {
	stored, err := LoadToken(c.tokenPath)
	if err != nil {
		return nil, err
	}

	if !stored.Expired(c.now()) {
		return &oauth2.Token{
			AccessToken:  stored.AccessToken,
			TokenType:    stored.TokenType,
			RefreshToken: stored.RefreshToken,
		}, nil
	}

	// A token source seeded with only the refresh token is forced to hit the
	// token endpoint exactly once.
	refreshed, err := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: stored.RefreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	updated := &StoredToken{
		AccessToken:  refreshed.AccessToken,
		RefreshToken: refreshed.RefreshToken,
		TokenType:    refreshed.TokenType,
		Scope:        stored.Scope,
		ExpiryDate:   refreshed.Expiry.UnixMilli(),
	}
	if updated.RefreshToken == "" {
		updated.RefreshToken = stored.RefreshToken
	}

	if err := SaveToken(c.tokenPath, updated); err != nil {
		return nil, fmt.Errorf("persist refreshed token: %w", err)
	}

	return refreshed, nil
}
