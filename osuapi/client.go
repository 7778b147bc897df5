// Package osuapi is a small client for the osu! web API v2, covering the
// endpoints needed to look up beatmap sets and player scores.
package osuapi

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/levigross/grequests"
)

const defaultBaseURL = "https://osu.ppy.sh"

// Client talks to the osu! API using OAuth client credentials. The token is
// fetched lazily and refreshed shortly before it expires. A Client is safe
// for concurrent use.
type Client struct {
	clientID     int
	clientSecret string
	baseURL      string
	limiter      *Limiter

	mu          sync.Mutex
	accessToken string
	tokenType   string
	expiresAt   time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLimiter replaces the default request limiter.
func WithLimiter(l *Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient builds a client from OAuth application credentials.
func NewClient(clientID int, clientSecret string, opts ...Option) *Client {
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		limiter:      NewLimiter(30, time.Minute, 2),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// authorization returns the Authorization header value, fetching a fresh
// token when the cached one is missing or about to expire.
func (c *Client) authorization(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Until(c.expiresAt) > 30*time.Second {
		return c.tokenType + " " + c.accessToken, nil
	}

	resp, err := grequests.Post(c.baseURL+"/oauth/token", grequests.FromRequestOptions(&grequests.RequestOptions{
		Context: ctx,
		Headers: map[string]string{"Accept": "application/json"},
		Data: map[string]string{
			"client_id":     strconv.Itoa(c.clientID),
			"client_secret": c.clientSecret,
			"grant_type":    "client_credentials",
			"scope":         "public",
		},
	}))
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Close()
	if !resp.Ok {
		return "", fmt.Errorf("fetch token: status %d: %s", resp.StatusCode, resp.String())
	}
	var tok tokenResponse
	if err := resp.JSON(&tok); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenType = tok.TokenType
	c.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.tokenType + " " + c.accessToken, nil
}

// get performs one authorized GET against an API v2 path, decoding the JSON
// body into out. opt may be nil; otherwise its `url` tags become the query.
func (c *Client) get(ctx context.Context, path string, opt any, out any) error {
	auth, err := c.authorization(ctx)
	if err != nil {
		return err
	}

	params := map[string]string{}
	if opt != nil {
		vals, err := query.Values(opt)
		if err != nil {
			return err
		}
		for k, v := range vals {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	defer c.limiter.Done()

	resp, err := grequests.Get(c.baseURL+"/api/v2"+path, grequests.FromRequestOptions(&grequests.RequestOptions{
		Context: ctx,
		Params:  params,
		Headers: map[string]string{
			"Accept":        "application/json",
			"Authorization": auth,
		},
	}))
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Close()
	if !resp.Ok {
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, resp.String())
	}
	return resp.JSON(out)
}
