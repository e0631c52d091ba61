package courier

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"github.com/danialmy/go-ship-einvoice/util"
)

type Client interface {
	PostJSON(ctx context.Context, endpoint, token string, body, result interface{}) error
	PostJSONNoAuth(ctx context.Context, endpoint string, body, result interface{}) error
	GetBytes(ctx context.Context, endpoint, token string) ([]byte, error)
}

type client struct {
	rest    *resty.Client
	baseURL string
}

// New creates a courier API client for the given base URL, typically
// Environment.BaseURL(countryCode).
func New(baseURL string) Client {
	restyClient := resty.New()
	restyClient.SetDebug(util.HTTPTraceEnabled())
	return &client{rest: restyClient, baseURL: baseURL}
}

func (c *client) PostJSON(ctx context.Context, endpoint, token string, body, result interface{}) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		Post(c.baseURL + endpoint)

	return checkError(resp, err)
}

func (c *client) PostJSONNoAuth(ctx context.Context, endpoint string, body, result interface{}) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetHeader("Content-Type", "application/json").
		Post(c.baseURL + endpoint)

	return checkError(resp, err)
}

func (c *client) GetBytes(ctx context.Context, endpoint, token string) ([]byte, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
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
