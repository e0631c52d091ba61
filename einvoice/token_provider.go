package einvoice

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"

	"github.com/danialmy/go-ship-einvoice/einvoice/model"
)

const defaultExpiresIn = 3600 // seconds, when the vendor omits expires_in

// TokenProvider obtains and caches the OAuth2 client-credentials access
// token for the tax authority's API.
type TokenProvider struct {
	client       Client
	tokenURL     string
	clientID     string
	clientSecret string

	clock clockwork.Clock

	mu          sync.Mutex
	accessToken string
	accessExp   time.Time

	refreshSkew time.Duration
}

func NewTokenProvider(client Client, tokenURL, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		client:       client,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		clock:        clockwork.NewRealClock(),
		refreshSkew:  30 * time.Second,
	}
}

// Token returns a valid access token, fetching a new one when the cached
// token is absent or expired.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if token, ok := p.currentIfValid(); ok {
		return token, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// double check after taking the lock
	if token, ok := p.currentIfValidLocked(); ok {
		return token, nil
	}

	return p.fetchLocked(ctx)
}

func (p *TokenProvider) currentIfValid() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentIfValidLocked()
}

func (p *TokenProvider) currentIfValidLocked() (string, bool) {
	if p.accessToken == "" || p.accessExp.IsZero() {
		return "", false
	}
	now := p.clock.Now().UTC()
	if p.accessExp.Sub(now) <= p.refreshSkew {
		return "", false
	}
	return p.accessToken, true
}

func (p *TokenProvider) fetchLocked(ctx context.Context) (string, error) {

	if p.clientID == "" || p.clientSecret == "" {
		return "", errors.New("client id and client secret cannot be empty")
	}

	res := &model.TokenResponse{}
	err := p.client.PostForm(ctx, p.tokenURL, map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     p.clientID,
		"client_secret": p.clientSecret,
	}, res)
	if err != nil {
		return "", errors.Wrap(err, "obtain access token")
	}

	if res.AccessToken == "" {
		return "", errors.New("no access token in response")
	}

	expiresIn := res.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	p.accessToken = res.AccessToken
	p.accessExp = p.clock.Now().UTC().Add(time.Duration(expiresIn) * time.Second)

	logger.Debugf("new access token obtained, expires in %d seconds", expiresIn)
	return p.accessToken, nil
}
