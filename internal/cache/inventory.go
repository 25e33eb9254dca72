package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	ProfileKeyPrefix     = "profile:user:%d"
	PostKeyPrefix        = "post:%d"
	ProfileListKey       = "profiles:all"
	GithubReposKeyPrefix = "github:repos:%s"
)

const (
	UserTTL        = 5 * time.Minute
	ProfileTTL     = 5 * time.Minute
	ProfileListTTL = time.Minute
	PostTTL        = 10 * time.Minute
	GithubReposTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func GithubReposKey(username string) string {
	return fmt.Sprintf(GithubReposKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfileListKey)
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
