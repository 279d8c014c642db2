// Package integrations provides HTTP clients for the remote services the
// installers consult.
//
// # Client Pattern
//
// [Client] holds the shared plumbing: default headers, an [httputil.Cache]
// for JSON responses and retry with backoff for transient failures. Service
// clients embed it:
//
//	gh, err := github.NewClient(os.Getenv("GITHUB_TOKEN"), time.Hour)
//	rel, err := gh.LatestRelease(ctx, "helix-editor", "helix", false)
//	asset, err := rel.Asset("amd64.deb")
//	err = gh.Download(ctx, asset.URL, "/tmp/helix.deb")
//
// [httputil.Cache]: github.com/matzehuels/devsetup/pkg/httputil.Cache
package integrations
