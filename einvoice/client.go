package einvoice

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/danialmy/go-ship-einvoice/einvoice/sign"
	"github.com/danialmy/go-ship-einvoice/util"
)

type Client interface {
	// PostForm sends a form-encoded request to an absolute URL; used for
	// the token endpoint, which lives on a different path per environment.
	PostForm(ctx context.Context, url string, form map[string]string, result interface{}) error

	PostSigned(ctx context.Context, endpoint, token string, payload []byte, result interface{}) error
	GetSigned(ctx context.Context, endpoint, token string, result interface{}) error
	GetSignedBytes(ctx context.Context, endpoint, token, accept string) ([]byte, error)
}

type client struct {
	rest    *resty.Client
	baseURL string
	signer  *sign.Signer
	clock   clockwork.Clock
}

// New creates an e-invoice API client. Every request except the token grant
// carries the HMAC signature headers produced by signer and a fresh
// correlation id.
func New(baseURL string, signer *sign.Signer) Client {
	restyClient := resty.New()
	restyClient.SetDebug(util.HTTPTraceEnabled())
	return &client{
		rest:    restyClient,
		baseURL: baseURL,
		signer:  signer,
		clock:   clockwork.NewRealClock(),
	}
}

func (c *client) PostForm(ctx context.Context, url string, form map[string]string, result interface{}) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(result).
		SetHeader("Accept", "application/json").
		Post(url)

	return checkError(resp, err)
}

func (c *client) PostSigned(ctx context.Context, endpoint, token string, payload []byte, result interface{}) error {
	headers := c.signer.Sign("POST", endpoint, payload, c.clock.Now())

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetAuthToken(token).
		SetHeaders(headers.Map()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-Correlation-ID", uuid.NewString()).
		Post(c.baseURL + endpoint)

	return checkError(resp, err)
}

func (c *client) GetSigned(ctx context.Context, endpoint, token string, result interface{}) error {
	headers := c.signer.Sign("GET", endpoint, nil, c.clock.Now())

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(result).
		SetAuthToken(token).
		SetHeaders(headers.Map()).
		SetHeader("Accept", "application/json").
		SetHeader("X-Correlation-ID", uuid.NewString()).
		Get(c.baseURL + endpoint)

	return checkError(resp, err)
}

func (c *client) GetSignedBytes(ctx context.Context, endpoint, token, accept string) ([]byte, error) {
	headers := c.signer.Sign("GET", endpoint, nil, c.clock.Now())

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeaders(headers.Map()).
		SetHeader("Accept", accept).
		SetHeader("X-Correlation-ID", uuid.NewString()).
		Get(c.baseURL + endpoint)

	if err := checkError(resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func checkError(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {

		body := resp.String()
		var errorMap map[string]any
		if body != "" {
			_ = json.Unmarshal([]byte(body), &errorMap)
		}

		var cause error
		if resp.StatusCode() == 401 {
			cause = ErrUnauthorized
		}

		return &RequestError{
			StatusCode:   resp.StatusCode(),
			Err:          cause,
			Body:         body,
			ErrorDetails: errorMap,
		}
	}
	return nil
}
