package friends

import (
	"context"
	"time"
)

// FirstPageCursor asks the remote for the first page of friends.
const FirstPageCursor int64 = -1

// Page is one page of the remote friends list.
type Page struct {
	Friends []Friendship
	// NextCursor is > 0 while more pages exist.
	NextCursor int64
}

// Remote is the subset of the Twitter API the sync engine relies on.
type Remote interface {
	// VerifyIdentity returns the screen name of the authenticated account.
	VerifyIdentity(ctx context.Context) (string, error)
	// FriendsCount returns how many accounts handle follows.
	FriendsCount(ctx context.Context, handle string) (int, error)
	// FriendsPage returns the page of friends of the authenticated account at cursor.
	FriendsPage(ctx context.Context, cursor int64) (Page, error)
	// CreateFriendship makes the authenticated account follow remoteID.
	CreateFriendship(ctx context.Context, remoteID int64) error
}

// RateLimited is implemented by remote errors signalling that the request
// rate limit was hit. ResetAt is when the remote resets the limit window.
type RateLimited interface {
	error
	ResetAt() time.Time
}

// Store reads and writes friendship rows.
type Store interface {
	// ReadRows loads at most maxRows rows from path.
	ReadRows(path string, maxRows int) ([]Friendship, error)
	// WriteRows writes rows to path, creating parent directories as needed.
	WriteRows(path string, rows []Friendship) error
}
