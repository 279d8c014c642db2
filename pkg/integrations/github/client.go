package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/devsetup/pkg/integrations"
)

// Client provides access to the GitHub releases API.
// It handles HTTP requests with caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests.
func NewClient(token string, cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:  integrations.NewClient(cache.Namespace("github:"), headers(token)),
		baseURL: "https://api.github.com",
	}, nil
}

func headers(token string) map[string]string {
	h := map[string]string{"Accept": "application/vnd.github+json"}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// LatestRelease returns the newest non-prerelease release of owner/repo.
// If refresh is true, cached data is bypassed.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string, refresh bool) (*Release, error) {
	key := "release:" + owner + "/" + repo

	var rel Release
	err := c.Cached(ctx, key, refresh, &rel, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)
		return c.Get(ctx, url, &rel)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: no release for github repo %s/%s", err, owner, repo)
		}
		return nil, err
	}
	return &rel, nil
}
