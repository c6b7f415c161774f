package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djh816/Rustle/feed"
	"github.com/djh816/Rustle/reddit"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected feed.Key
	}{
		{name: "empty string is home", input: "", expected: feed.Home},
		{name: "home sentinel", input: "home", expected: feed.Home},
		{name: "subreddit name", input: "golang", expected: feed.Subreddit("golang")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, feed.ParseKey(tt.input))
		})
	}
}

func TestKeyForms(t *testing.T) {
	assert.Equal(t, "home", feed.Home.String())
	assert.Equal(t, "/r/home", feed.Home.Label())
	assert.True(t, feed.Home.IsHome())
	assert.Equal(t, reddit.HomeScope, feed.Home.Scope())

	golang := feed.Subreddit("golang")
	assert.Equal(t, "golang", golang.String())
	assert.Equal(t, "/r/golang", golang.Label())
	assert.False(t, golang.IsHome())
	assert.Equal(t, reddit.SubredditScope("golang"), golang.Scope())
}

func TestCursorStates(t *testing.T) {
	assert.True(t, feed.CursorStart.IsStart())
	assert.Empty(t, feed.CursorStart.Token())

	token := feed.CursorToken("t3_abc")
	assert.False(t, token.IsStart())
	assert.Equal(t, "t3_abc", token.Token())

	// An empty token from the API means no further pages, which is
	// Start again.
	assert.True(t, feed.CursorToken("").IsStart())

	// Unknown is mid-feed: not the start, but nothing to send either.
	assert.False(t, feed.CursorUnknown.IsStart())
	assert.Empty(t, feed.CursorUnknown.Token())
}
