// Package friends exports the accounts a Twitter user follows and recreates
// those friendships for another user, pacing every request so the remote
// rate limits are respected.
package friends

// Friendship is a directed "follows" edge from the authenticated account to
// the account identified by Handle and RemoteID.
type Friendship struct {
	Handle   string `json:"screen_name"`
	RemoteID int64  `json:"id"`
	// SkipReason is set when the friendship can never be created, e.g. the
	// account no longer exists.
	SkipReason string `json:"reason_for_skipping,omitempty"`
}

// Skipped reports whether the friendship was classified as unprocessable.
func (f Friendship) Skipped() bool {
	return f.SkipReason != ""
}

// ExportResult is the outcome of one export run.
type ExportResult struct {
	OK          bool
	Owner       string
	UserMessage string
	// OutputPath is the absolute path of the generated file, empty on failure.
	OutputPath string
	Exported   int
}

// ImportResult is the outcome of one import run.
//
// Imported and Remaining always partition the input rows: every row is either
// in Imported (by handle) or in Remaining, never both.
type ImportResult struct {
	OK          bool
	Owner       string
	UserMessage string
	Imported    []string
	Remaining   []Friendship
}

// Resubmittable returns the remaining friendships that were not skipped, i.e.
// the rows worth trying again later.
func (r ImportResult) Resubmittable() []Friendship {
	var rows []Friendship
	for _, f := range r.Remaining {
		if !f.Skipped() {
			rows = append(rows, Friendship{Handle: f.Handle, RemoteID: f.RemoteID})
		}
	}
	return rows
}

// retryContext tracks the attempts of a single logical operation: one page
// fetch or one friendship creation.
type retryContext struct {
	attempt     int
	maxAttempts int
}
