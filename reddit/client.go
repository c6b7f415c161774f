package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-resty/resty/v2"
)

// Scope selects which listing a fetch targets: the signed-in user's
// home aggregate, or a single named subreddit.
type Scope struct {
	subreddit string
}

// HomeScope targets the home feed.
var HomeScope = Scope{}

// SubredditScope targets /r/<name>.
func SubredditScope(name string) Scope {
	return Scope{subreddit: name}
}

// IsHome reports whether the scope is the home aggregate.
func (s Scope) IsHome() bool {
	return s.subreddit == ""
}

// Name returns the subreddit name, empty for the home scope.
func (s Scope) Name() string {
	return s.subreddit
}

// Config holds the client's endpoints and identity. The base URLs only
// change in tests.
type Config struct {
	AuthBaseURL string
	APIBaseURL  string
	UserAgent   string
}

// Client is a thin wrapper over the Reddit OAuth2 API. Its only mutable
// state is the access token, set by Authenticate; everything else is a
// stateless request.
type Client struct {
	http *resty.Client
	cfg  Config

	mu    sync.RWMutex
	token string
}

// New creates a client with no session. Call Authenticate before any
// listing method.
func New(cfg Config) *Client {
	httpClient := resty.New().
		SetHeader("User-Agent", cfg.UserAgent)

	return &Client{http: httpClient, cfg: cfg}
}

// Authenticate performs the OAuth2 password grant against the token
// endpoint and stores the returned access token. A structured error
// payload from Reddit becomes an *AuthError with the provider's reason;
// any other non-2xx response becomes an *AuthError with the status.
func (c *Client) Authenticate(ctx context.Context, clientID, clientSecret, username, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(clientID, clientSecret).
		SetFormData(map[string]string{
			"grant_type": "password",
			"username":   username,
			"password":   password,
		}).
		Post(c.cfg.AuthBaseURL + "/api/v1/access_token")
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		var payload authErrorResponse
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return &AuthError{Reason: payload.Error}
		}
		return &AuthError{StatusCode: resp.StatusCode()}
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil || auth.AccessToken == "" {
		return fmt.Errorf("could not parse authentication response")
	}

	c.mu.Lock()
	c.token = auth.AccessToken
	c.mu.Unlock()
	return nil
}

// Listing fetches one page of posts for the scope. A non-empty after
// token requests the page following it. Returns the posts in API order
// and the next page's token, empty when the listing has no further
// pages.
func (c *Client) Listing(ctx context.Context, scope Scope, after string) ([]Post, string, error) {
	var url string
	if scope.IsHome() {
		url = c.cfg.APIBaseURL + "/"
	} else {
		url = c.cfg.APIBaseURL + "/r/" + scope.Name()
	}

	var listing listingResponse
	if err := c.get(ctx, url, after, &listing); err != nil {
		return nil, "", err
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, listing.Data.After, nil
}

// SubscribedSubreddits fetches the display names of the account's
// subscribed subreddits, in API order.
func (c *Client) SubscribedSubreddits(ctx context.Context) ([]string, error) {
	var listing subredditListingResponse
	if err := c.get(ctx, c.cfg.APIBaseURL+"/subreddits/mine/subscriber", "", &listing); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		names = append(names, child.Data.DisplayName)
	}
	return names, nil
}

// get performs an authenticated GET and decodes the body into out.
func (c *Client) get(ctx context.Context, url, after string, out any) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return ErrNotAuthenticated
	}

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token)
	if after != "" {
		req.SetQueryParam("after", after)
	}

	resp, err := req.Get(url)
	if err != nil {
		return fmt.Errorf("listing request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return &FetchError{StatusCode: resp.StatusCode()}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &FetchError{Decode: err}
	}
	return nil
}
