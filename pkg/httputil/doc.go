// Package httputil provides the HTTP plumbing behind release lookups.
//
//   - [Cache]: file-based cache of JSON-encoded API responses with a TTL
//   - [Retry]: retry with exponential backoff for transient failures
//
// # Caching
//
// [Cache] stores one file per key under $XDG_CACHE_HOME/devsetup (falling
// back to ~/.cache/devsetup). Keys are hashed, so any string is a valid key;
// [Cache.Namespace] scopes keys per data source:
//
//	cache, err := httputil.NewCache("", time.Hour)
//	releases := cache.Namespace("github:release:")
//	releases.Set("helix-editor/helix", rel)
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried; anything else (a 404,
// a decode error) is returned immediately.
package httputil
