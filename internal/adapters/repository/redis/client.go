package redis

import (
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
)

// NormalizeURL rewrites a plain redis:// scheme to rediss:// so managed
// stores that only accept TLS connections work with their default URL.
func NormalizeURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "redis://") {
		return "rediss://" + strings.TrimPrefix(rawURL, "redis://")
	}
	return rawURL
}

// NewClient builds the store client from a connection URL. The caller owns
// the client and is responsible for closing it.
func NewClient(rawURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(NormalizeURL(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return goredis.NewClient(opts), nil
}
