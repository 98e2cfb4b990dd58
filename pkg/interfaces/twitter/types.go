package twitter

// User is the subset of the v1.1 user object the importer relies on.
type User struct {
	ID           int64  `json:"id"`
	IDStr        string `json:"id_str"`
	ScreenName   string `json:"screen_name"`
	Name         string `json:"name"`
	Protected    bool   `json:"protected"`
	FriendsCount int    `json:"friends_count"`
}

// FriendsList is one page of friends/list.
type FriendsList struct {
	Users          []User `json:"users"`
	NextCursor     int64  `json:"next_cursor"`
	PreviousCursor int64  `json:"previous_cursor"`
}

type errorResponse struct {
	Errors []struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"errors"`
	// Some endpoints answer with a single error string.
	Error string `json:"error"`
}
