package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	GroupKeyPrefix    = "group:%s"
	FeedPageKeyPrefix = "feedpage:%s"
)

const (
	UserTTL  = 5 * time.Minute
	GroupTTL = 10 * time.Minute
	PostTTL  = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

// FeedPageKey maps a request path (including query string) to the key
// holding its cached global-feed snapshot.
func FeedPageKey(path string) string {
	return fmt.Sprintf(FeedPageKeyPrefix, path)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}

// ClearFeedPages drops every cached global-feed snapshot. This is an
// operator/test escape hatch only: post mutations intentionally do not call
// it, so feed staleness stays bounded by the configured TTL rather than
// tracked per write.
func ClearFeedPages(ctx context.Context) error {
	if client == nil {
		return nil
	}
	iter := client.Scan(ctx, 0, fmt.Sprintf(FeedPageKeyPrefix, "*"), 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
	return iter.Err()
}
