package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/djh816/Rustle/config"
	"github.com/djh816/Rustle/reddit"
)

// Phase is the controller's per-feed fetch cycle state.
type Phase int

const (
	// Idle means no fetch is in flight. An error may be recorded
	// alongside it.
	Idle Phase = iota
	// FetchingInitial means the first page for a freshly switched
	// feed is being fetched.
	FetchingInitial
	// FetchingMore means a continuation page is being fetched.
	FetchingMore
)

// Fetching reports whether a post fetch is in flight.
func (p Phase) Fetching() bool {
	return p != Idle
}

// API is the slice of the Reddit client the controller uses. Tests
// substitute a stub.
type API interface {
	Authenticate(ctx context.Context, clientID, clientSecret, username, password string) error
	Listing(ctx context.Context, scope reddit.Scope, after string) ([]reddit.Post, string, error)
	SubscribedSubreddits(ctx context.Context) ([]string, error)
}

// Snapshot is the renderer-facing copy of the controller state. Posts
// and Subreddits are fresh slices; the renderer may hold them across
// frames.
type Snapshot struct {
	Key               Key
	Posts             []reddit.Post
	Phase             Phase
	Err               string
	Cursor            Cursor
	Subreddits        []string
	LoadingSubreddits bool
}

// Options tunes the infinite-scroll trigger. Zero values fall back to
// the defaults.
type Options struct {
	// Threshold is the distance from the bottom of the content, in
	// layout units, below which MaybeLoadMore fires.
	Threshold float64
	// Cooldown suppresses repeat triggers for a window after one
	// fires, so a burst of scroll events while a fetch is still
	// propagating starts at most one load.
	Cooldown time.Duration
}

// Controller owns the feed state: the post list, the pagination
// cursor, the fetch phase, and the current error. All of it lives
// behind one mutex and every fetch completion publishes posts, cursor
// and phase together, so readers never observe a torn update.
//
// Fetches run on their own goroutines; the renderer thread only ever
// takes the lock for long enough to copy or flip state. At most one
// post fetch and one subreddit-list fetch are in flight at a time, and
// every worker carries the generation current when it was spawned:
// completions from a previous generation are discarded, so a fetch
// outliving a feed switch can never write into the new feed.
type Controller struct {
	api  API
	ctx  context.Context
	opts Options

	authMu sync.Mutex
	authed bool

	mu          sync.Mutex
	settings    config.Settings
	key         Key
	posts       []reddit.Post
	cursor      Cursor
	phase       Phase
	errMsg      string
	subreddits  []string
	loadingSubs bool
	// generation tags post-fetch workers; subGeneration tags the
	// subreddit-list worker. They are separate so a feed switch cannot
	// orphan a subscription fetch that is still in flight.
	generation    uint64
	subGeneration uint64
	lastTrigger   time.Time

	updates chan struct{}
}

// New creates a controller. The context bounds every network call the
// controller spawns.
func New(ctx context.Context, api API, settings config.Settings, opts Options) *Controller {
	if opts.Threshold <= 0 {
		opts.Threshold = config.DefaultTriggerThreshold
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = config.DefaultTriggerCooldown
	}

	return &Controller{
		api:      api,
		ctx:      ctx,
		opts:     opts,
		settings: settings,
		updates:  make(chan struct{}, 1),
	}
}

// Updates returns the wake channel. Every published state change makes
// a non-blocking send on it; the renderer waits on the channel and
// repaints from a fresh Snapshot.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Snapshot copies the renderer-facing state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Key:               c.key,
		Posts:             append([]reddit.Post(nil), c.posts...),
		Phase:             c.phase,
		Err:               c.errMsg,
		Cursor:            c.cursor,
		Subreddits:        append([]string(nil), c.subreddits...),
		LoadingSubreddits: c.loadingSubs,
	}
}

// Settings returns the settings the controller is running with.
func (c *Controller) Settings() config.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// FeedKeys lists the feeds to offer: home first, then the subscribed
// subreddits in API order.
func (c *Controller) FeedKeys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Key{Home}, lo.Map(c.subreddits, func(name string, _ int) Key {
		return Subreddit(name)
	})...)
}

// SwitchFeed makes key the current feed and fetches its first page.
// While a fetch for the same key is in flight the call is dropped, so
// a double-click on one tab starts one fetch. A switch to a different
// key supersedes whatever is in flight: the generation bump orphans
// the old worker, whose result is discarded on arrival. Returns
// whether a fetch was started.
func (c *Controller) SwitchFeed(key Key) bool {
	c.mu.Lock()
	if c.phase.Fetching() && key == c.key {
		c.mu.Unlock()
		return false
	}
	c.key = key
	c.posts = nil
	c.cursor = CursorStart
	c.errMsg = ""
	c.phase = FetchingInitial
	c.generation++
	gen := c.generation
	settings := c.settings
	c.mu.Unlock()
	c.notify()

	log.WithField("feed", key.String()).Debug("Switching feed")
	go c.fetch(gen, key, CursorStart, settings)
	return true
}

// LoadMore fetches the next page of the current feed and appends it.
// No-op while a fetch is in flight. A Start cursor with posts already
// loaded is an inconsistent position (the listing omitted its token);
// it is replaced with Unknown so the completion appends instead of
// wiping the list.
func (c *Controller) LoadMore() bool {
	c.mu.Lock()
	if c.phase.Fetching() {
		c.mu.Unlock()
		return false
	}
	key := c.key
	cursor := c.cursor
	if cursor.IsStart() && len(c.posts) > 0 {
		cursor = CursorUnknown
	}
	c.phase = FetchingMore
	gen := c.generation
	settings := c.settings
	c.mu.Unlock()
	c.notify()

	log.WithFields(log.Fields{"feed": key.String(), "after": cursor.String()}).Debug("Loading more posts")
	go c.fetch(gen, key, cursor, settings)
	return true
}

// Refresh re-fetches the current feed from the start.
func (c *Controller) Refresh() bool {
	c.mu.Lock()
	key := c.key
	c.mu.Unlock()
	return c.SwitchFeed(key)
}

// MaybeLoadMore is the scroll-proximity trigger: it starts a LoadMore
// when the caller is within the threshold of the bottom of the
// content, nothing is in flight, and the cooldown since the last
// trigger has elapsed. Returns whether a fetch was started.
func (c *Controller) MaybeLoadMore(distanceToBottom float64) bool {
	c.mu.Lock()
	if c.phase.Fetching() || distanceToBottom >= c.opts.Threshold {
		c.mu.Unlock()
		return false
	}
	if !c.lastTrigger.IsZero() && time.Since(c.lastTrigger) < c.opts.Cooldown {
		c.mu.Unlock()
		return false
	}
	c.lastTrigger = time.Now()
	c.mu.Unlock()

	return c.LoadMore()
}

// LoadSubreddits fetches the subscribed-subreddit list. Single-flight
// with its own busy flag, independent of post fetches.
func (c *Controller) LoadSubreddits() bool {
	c.mu.Lock()
	if c.loadingSubs {
		c.mu.Unlock()
		return false
	}
	c.loadingSubs = true
	gen := c.subGeneration
	settings := c.settings
	c.mu.Unlock()
	c.notify()

	go func() {
		if err := c.ensureSession(settings); err != nil {
			c.finishSubreddits(gen, nil, fmt.Sprintf("Authentication error: %v", err))
			return
		}
		subs, err := c.api.SubscribedSubreddits(c.ctx)
		if err != nil {
			c.finishSubreddits(gen, nil, fmt.Sprintf("Error fetching subreddits: %v", err))
			return
		}
		c.finishSubreddits(gen, subs, "")
	}()
	return true
}

// ApplySettings installs a save-confirmed settings record: the session
// is dropped so the next fetch re-authenticates, the feed state is
// reset, and the subreddit list and home feed are reloaded. Any fetch
// still in flight is orphaned by the generation bump.
func (c *Controller) ApplySettings(s config.Settings) {
	c.mu.Lock()
	c.settings = s
	c.generation++
	c.subGeneration++
	c.phase = Idle
	c.key = Home
	c.posts = nil
	c.cursor = CursorStart
	c.errMsg = ""
	c.subreddits = nil
	c.loadingSubs = false
	c.mu.Unlock()

	c.authMu.Lock()
	c.authed = false
	c.authMu.Unlock()

	c.LoadSubreddits()
	c.SwitchFeed(Home)
}

// DismissError clears the current error without starting a fetch.
func (c *Controller) DismissError() {
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()
}

// ensureSession authenticates once per client lifetime. Serialized so
// concurrent post and subreddit workers cannot race the token request.
func (c *Controller) ensureSession(settings config.Settings) error {
	c.authMu.Lock()
	defer c.authMu.Unlock()

	if c.authed {
		return nil
	}
	if !settings.HasCredentials() {
		return errors.New("missing credentials")
	}
	if err := c.api.Authenticate(c.ctx, settings.ClientID, settings.ClientSecret, settings.Username, settings.Password); err != nil {
		return err
	}
	c.authed = true
	return nil
}

// fetch is the worker body for SwitchFeed and LoadMore: authenticate
// if needed, fetch one page, publish.
func (c *Controller) fetch(gen uint64, key Key, cursor Cursor, settings config.Settings) {
	if err := c.ensureSession(settings); err != nil {
		c.finishFetch(gen, key, cursor, nil, "", fmt.Sprintf("Authentication error: %v", err))
		return
	}

	posts, after, err := c.api.Listing(c.ctx, key.Scope(), cursor.Token())
	if err != nil {
		c.finishFetch(gen, key, cursor, nil, "", fmt.Sprintf("Error fetching posts: %v", err))
		return
	}
	c.finishFetch(gen, key, cursor, posts, after, "")
}

// finishFetch publishes a fetch result in one critical section. A
// result from a stale generation or for a feed that is no longer
// current is dropped on the floor.
func (c *Controller) finishFetch(gen uint64, key Key, used Cursor, posts []reddit.Post, after string, errMsg string) {
	c.mu.Lock()
	if gen != c.generation || key != c.key {
		c.mu.Unlock()
		log.WithField("feed", key.String()).Debug("Discarding stale fetch result")
		return
	}

	if errMsg != "" {
		c.errMsg = errMsg
		c.phase = Idle
		c.mu.Unlock()
		c.notify()
		log.Warn(errMsg)
		return
	}

	// A fetch from the start of an empty feed replaces the list.
	// Every other completion appends, preserving prior order.
	if used.IsStart() && len(c.posts) == 0 {
		c.posts = posts
	} else {
		c.posts = append(c.posts, posts...)
	}
	c.cursor = CursorToken(after)
	c.errMsg = ""
	c.phase = Idle
	count := len(c.posts)
	c.mu.Unlock()
	c.notify()

	log.WithFields(log.Fields{
		"feed":      key.String(),
		"fetched":   len(posts),
		"total":     count,
		"next_page": after != "",
	}).Debug("Fetch complete")
}

// finishSubreddits publishes a subreddit-list result. A completion from
// before a settings change is discarded; the replacement fetch started
// by ApplySettings owns the busy flag by then.
func (c *Controller) finishSubreddits(gen uint64, subs []string, errMsg string) {
	c.mu.Lock()
	if gen != c.subGeneration {
		c.mu.Unlock()
		log.Debug("Discarding stale subreddit list")
		return
	}
	c.loadingSubs = false
	if errMsg != "" {
		c.errMsg = errMsg
	} else {
		c.subreddits = subs
		c.errMsg = ""
	}
	c.mu.Unlock()
	c.notify()
}
