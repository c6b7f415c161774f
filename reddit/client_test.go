package reddit_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djh816/Rustle/reddit"
)

const testUserAgent = "Rustle:test (by /u/tester)"

func newTestClient(authURL, apiURL string) *reddit.Client {
	return reddit.New(reddit.Config{
		AuthBaseURL: authURL,
		APIBaseURL:  apiURL,
		UserAgent:   testUserAgent,
	})
}

func authenticate(t *testing.T, client *reddit.Client) {
	t.Helper()
	require.NoError(t, client.Authenticate(context.Background(), "id", "secret", "user", "pass"))
}

func TestAuthenticate(t *testing.T) {
	t.Run("success sends basic auth and password grant", func(t *testing.T) {
		var gotAuth, gotGrant, gotUser, gotPass, gotAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/access_token", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			gotAgent = r.Header.Get("User-Agent")
			require.NoError(t, r.ParseForm())
			gotGrant = r.PostFormValue("grant_type")
			gotUser = r.PostFormValue("username")
			gotPass = r.PostFormValue("password")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "tok-123"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		err := client.Authenticate(context.Background(), "my-id", "my-secret", "spartan", "hunter2")
		require.NoError(t, err)

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("my-id:my-secret"))
		assert.Equal(t, expected, gotAuth)
		assert.Equal(t, testUserAgent, gotAgent)
		assert.Equal(t, "password", gotGrant)
		assert.Equal(t, "spartan", gotUser)
		assert.Equal(t, "hunter2", gotPass)
	})

	t.Run("provider rejection carries the reason", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid_grant"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		err := client.Authenticate(context.Background(), "id", "secret", "user", "wrong")

		var authErr *reddit.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "invalid_grant", authErr.Reason)
	})

	t.Run("non-success without error payload carries the status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		err := client.Authenticate(context.Background(), "id", "secret", "user", "pass")

		var authErr *reddit.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusBadGateway, authErr.StatusCode)
		assert.Empty(t, authErr.Reason)
	})

	t.Run("success body without a token is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		err := client.Authenticate(context.Background(), "id", "secret", "user", "pass")
		assert.Error(t, err)
	})
}

const listingBody = `{
	"data": {
		"children": [
			{"data": {"title": "First", "author": "alice", "subreddit": "golang", "score": 42, "url": "https://example.com/1", "thumbnail": "https://thumb/1.jpg"}},
			{"data": {"title": "Second", "author": "bob", "subreddit": "golang", "score": 7, "url": "https://example.com/2", "thumbnail": "self"}}
		],
		"after": "t3_next"
	}
}`

func TestListing(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		client := newTestClient("http://invalid", "http://invalid")
		_, _, err := client.Listing(context.Background(), reddit.HomeScope, "")
		assert.ErrorIs(t, err, reddit.ErrNotAuthenticated)
	})

	t.Run("home hits the root path with a bearer token", func(t *testing.T) {
		var gotPath, gotAuth, gotAfter string
		server := newAuthAndAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotAfter = r.URL.Query().Get("after")
			w.Write([]byte(listingBody))
		})
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		authenticate(t, client)

		posts, after, err := client.Listing(context.Background(), reddit.HomeScope, "")
		require.NoError(t, err)

		assert.Equal(t, "/", gotPath)
		assert.Equal(t, "Bearer tok-123", gotAuth)
		assert.Empty(t, gotAfter)
		assert.Equal(t, "t3_next", after)
		require.Len(t, posts, 2)
		assert.Equal(t, "First", posts[0].Title)
		assert.Equal(t, "alice", posts[0].Author)
		assert.Equal(t, 42, posts[0].Score)
		assert.Equal(t, "Second", posts[1].Title)
	})

	t.Run("subreddit scope hits /r/name and passes the cursor", func(t *testing.T) {
		var gotPath, gotAfter string
		server := newAuthAndAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAfter = r.URL.Query().Get("after")
			w.Write([]byte(listingBody))
		})
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		authenticate(t, client)

		_, _, err := client.Listing(context.Background(), reddit.SubredditScope("golang"), "t3_abc")
		require.NoError(t, err)

		assert.Equal(t, "/r/golang", gotPath)
		assert.Equal(t, "t3_abc", gotAfter)
	})

	t.Run("non-success maps to a fetch error with the status", func(t *testing.T) {
		server := newAuthAndAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		authenticate(t, client)

		_, _, err := client.Listing(context.Background(), reddit.HomeScope, "")
		var fetchErr *reddit.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	})

	t.Run("malformed body maps to a decode error", func(t *testing.T) {
		server := newAuthAndAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})
		defer server.Close()

		client := newTestClient(server.URL, server.URL)
		authenticate(t, client)

		_, _, err := client.Listing(context.Background(), reddit.HomeScope, "")
		var fetchErr *reddit.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Error(t, fetchErr.Decode)
	})
}

func TestSubscribedSubreddits(t *testing.T) {
	server := newAuthAndAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subreddits/mine/subscriber", r.URL.Path)
		w.Write([]byte(`{"data": {"children": [
			{"data": {"display_name": "aww"}},
			{"data": {"display_name": "pics"}}
		]}}`))
	})
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	authenticate(t, client)

	names, err := client.SubscribedSubreddits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"aww", "pics"}, names)
}

// newAuthAndAPIServer serves the token endpoint itself and hands every
// other request to handler.
func newAuthAndAPIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/access_token" {
			w.Write([]byte(`{"access_token": "tok-123"}`))
			return
		}
		handler(w, r)
	}))
}
