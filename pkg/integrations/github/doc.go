// Package github looks up release assets on the GitHub API.
//
// # Usage
//
//	client, err := github.NewClient(os.Getenv("GITHUB_TOKEN"), time.Hour)
//	if err != nil {
//	    return err
//	}
//
//	rel, err := client.LatestRelease(ctx, "helix-editor", "helix", false)
//	if err != nil {
//	    return err
//	}
//	asset, err := rel.Asset("amd64.deb")
//
// # Authentication
//
// A token is optional. Unauthenticated requests are limited to 60 per hour,
// which is plenty for an installer run.
//
// # Caching
//
// Release metadata is cached for the TTL given to [NewClient]; pass
// refresh=true to bypass the cache.
package github
