package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	GithubKeyPrefix = "github:%s"
	ProfilesKey     = "profiles:all"
)

const (
	UserTTL     = 5 * time.Minute
	ProfilesTTL = 5 * time.Minute
	GithubTTL   = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func GithubKey(username string) string {
	return fmt.Sprintf(GithubKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateProfiles(ctx context.Context) {
	Invalidate(ctx, ProfilesKey)
}
