package courier

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"

	"github.com/danialmy/go-ship-einvoice/courier/model"
)

const (
	tokenEndpoint    = "/2.0/oauth/access_token"
	defaultExpiresIn = 3600 // seconds, when the vendor omits expires_in
)

// TokenProvider obtains and caches an OAuth2 client-credentials access
// token, refreshing it when forced, missing, or close to expiry.
type TokenProvider struct {
	client       Client
	clientID     string
	clientSecret string

	clock clockwork.Clock

	mu          sync.Mutex
	accessToken string
	accessExp   time.Time

	// how long before actual expiry the token is treated as expired
	refreshSkew time.Duration
}

func NewTokenProvider(client Client, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		client:       client,
		clientID:     clientID,
		clientSecret: clientSecret,
		clock:        clockwork.NewRealClock(),
		refreshSkew:  5 * time.Minute, // vendor asks for renewal five minutes ahead
	}
}

// Token returns a valid access token, fetching a new one when force is set
// or the cached token is absent or about to expire.
func (p *TokenProvider) Token(ctx context.Context, force bool) (string, error) {
	if !force {
		if token, ok := p.currentIfValid(); ok {
			return token, nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// double check after taking the lock
	if !force {
		if token, ok := p.currentIfValidLocked(); ok {
			return token, nil
		}
	}

	return p.fetchLocked(ctx)
}

func (p *TokenProvider) currentIfValid() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentIfValidLocked()
}

func (p *TokenProvider) currentIfValidLocked() (string, bool) {
	if p.accessToken == "" {
		return "", false
	}
	// no expiry recorded, force a refresh
	if p.accessExp.IsZero() {
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
	err := p.client.PostJSONNoAuth(ctx, tokenEndpoint, model.TokenRequest{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		GrantType:    "client_credentials",
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
