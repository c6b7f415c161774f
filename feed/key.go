package feed

import "github.com/djh816/Rustle/reddit"

// Key identifies a feed: the home aggregate or a named subreddit.
// The zero value is the home feed.
type Key struct {
	subreddit string
}

// Home is the key for the signed-in user's front page.
var Home = Key{}

// Subreddit returns the key for /r/<name>.
func Subreddit(name string) Key {
	return Key{subreddit: name}
}

// ParseKey maps the "home" sentinel to the home key and anything else
// to a subreddit key.
func ParseKey(s string) Key {
	if s == "" || s == "home" {
		return Home
	}
	return Subreddit(s)
}

// IsHome reports whether the key is the home feed.
func (k Key) IsHome() bool {
	return k.subreddit == ""
}

// String returns "home" or the subreddit name.
func (k Key) String() string {
	if k.IsHome() {
		return "home"
	}
	return k.subreddit
}

// Label returns the display form: "/r/home" or "/r/<name>".
func (k Key) Label() string {
	return "/r/" + k.String()
}

// Scope converts the key to the API client's listing scope.
func (k Key) Scope() reddit.Scope {
	if k.IsHome() {
		return reddit.HomeScope
	}
	return reddit.SubredditScope(k.subreddit)
}
