package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultPostsPerPage  = 10
	defaultIndexCacheTTL = 20 * time.Second
)

// PostsPerPage is the fixed page size for every listing. It is server
// configuration, never a request parameter.
func PostsPerPage() int {
	if v, err := strconv.Atoi(os.Getenv("POSTS_PER_PAGE")); err == nil && v > 0 {
		return v
	}
	return defaultPostsPerPage
}

func IndexCacheTTL() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("INDEX_CACHE_TTL_SECONDS")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return defaultIndexCacheTTL
}
