package twitter

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

// VerifyCredentials returns the user the access token belongs to.
func (c *TwitterClient) VerifyCredentials(ctx context.Context) (*User, error) {
	params := url.Values{}
	params.Set("skip_status", "true")
	params.Set("include_entities", "false")
	params.Set("include_email", "false")

	var user User
	if err := c.makeRequest(ctx, http.MethodGet, c.config.VerifyCredentialsEndpoint, params, &user); err != nil {
		c.logger.WithError(err).Error("failed to verify credentials")
		return nil, err
	}
	return &user, nil
}

// ShowUser returns the public profile of screenName.
func (c *TwitterClient) ShowUser(ctx context.Context, screenName string) (*User, error) {
	params := url.Values{}
	params.Set("screen_name", screenName)
	params.Set("include_entities", "false")

	var user User
	if err := c.makeRequest(ctx, http.MethodGet, c.config.UserShowEndpoint, params, &user); err != nil {
		c.logger.WithError(err).WithField("screen_name", screenName).Error("failed to show user")
		return nil, err
	}
	return &user, nil
}

// GetFriendsList returns the page of friends of the authenticated user at
// cursor; -1 asks for the first page.
func (c *TwitterClient) GetFriendsList(ctx context.Context, cursor int64, count int) (*FriendsList, error) {
	params := url.Values{}
	params.Set("cursor", strconv.FormatInt(cursor, 10))
	params.Set("count", strconv.Itoa(count))
	params.Set("skip_status", "true")
	params.Set("include_user_entities", "false")

	var list FriendsList
	if err := c.makeRequest(ctx, http.MethodGet, c.config.FriendsListEndpoint, params, &list); err != nil {
		c.logger.WithError(err).WithField("cursor", cursor).Error("failed to get friends list")
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"cursor":      cursor,
		"users":       len(list.Users),
		"next_cursor": list.NextCursor,
	}).Debug("Got friends list page")
	return &list, nil
}

// CreateFriendship makes the authenticated user follow userID.
func (c *TwitterClient) CreateFriendship(ctx context.Context, userID int64) (*User, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))

	var user User
	if err := c.makeRequest(ctx, http.MethodPost, c.config.FriendshipCreateEndpoint, params, &user); err != nil {
		c.logger.WithError(err).WithField("remote_id", userID).Debug("failed to create friendship")
		return nil, err
	}
	return &user, nil
}
