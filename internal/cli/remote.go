package cli

import (
	"context"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
	"github.com/lisanmuaddib/twfriends/pkg/interfaces/twitter"
)

// twitterRemote serves the sync engine from the Twitter REST API.
type twitterRemote struct {
	client   *twitter.TwitterClient
	pageSize int
}

func newTwitterRemote(client *twitter.TwitterClient, pageSize int) *twitterRemote {
	return &twitterRemote{client: client, pageSize: pageSize}
}

func (r *twitterRemote) VerifyIdentity(ctx context.Context) (string, error) {
	user, err := r.client.VerifyCredentials(ctx)
	if err != nil {
		return "", err
	}
	return user.ScreenName, nil
}

func (r *twitterRemote) FriendsCount(ctx context.Context, handle string) (int, error) {
	user, err := r.client.ShowUser(ctx, handle)
	if err != nil {
		return 0, err
	}
	return user.FriendsCount, nil
}

func (r *twitterRemote) FriendsPage(ctx context.Context, cursor int64) (friends.Page, error) {
	list, err := r.client.GetFriendsList(ctx, cursor, r.pageSize)
	if err != nil {
		return friends.Page{}, err
	}

	page := friends.Page{
		Friends:    make([]friends.Friendship, 0, len(list.Users)),
		NextCursor: list.NextCursor,
	}
	for _, u := range list.Users {
		page.Friends = append(page.Friends, friends.Friendship{Handle: u.ScreenName, RemoteID: u.ID})
	}
	return page, nil
}

func (r *twitterRemote) CreateFriendship(ctx context.Context, remoteID int64) error {
	_, err := r.client.CreateFriendship(ctx, remoteID)
	return err
}

var _ friends.Remote = (*twitterRemote)(nil)
