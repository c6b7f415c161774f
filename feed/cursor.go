package feed

// Cursor is the pagination position within a feed. It has three
// states, not two: Start (fresh feed, nothing fetched), a concrete
// token from the last completed fetch, and Unknown — mid-feed but
// without a token. Unknown exists so that a feed whose listing omitted
// the "after" token is never mistaken for the start of the feed, which
// would let a later fetch wipe the posts already on screen.
type Cursor struct {
	kind  cursorKind
	token string
}

type cursorKind int

const (
	cursorStart cursorKind = iota
	cursorToken
	cursorUnknown
)

// CursorStart is the position before the first fetch.
var CursorStart = Cursor{}

// CursorUnknown marks a mid-feed position with no token.
var CursorUnknown = Cursor{kind: cursorUnknown}

// CursorToken wraps a pagination token returned by a fetch. An empty
// token means the listing reported no further pages, which maps back
// to Start.
func CursorToken(token string) Cursor {
	if token == "" {
		return CursorStart
	}
	return Cursor{kind: cursorToken, token: token}
}

// IsStart reports whether the cursor is at the start of the feed.
func (c Cursor) IsStart() bool {
	return c.kind == cursorStart
}

// Token returns the pagination token to send, empty for Start and
// Unknown.
func (c Cursor) Token() string {
	return c.token
}

// String is the log form of the cursor.
func (c Cursor) String() string {
	switch c.kind {
	case cursorToken:
		return c.token
	case cursorUnknown:
		return "<unknown>"
	default:
		return "<start>"
	}
}
