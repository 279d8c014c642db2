package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/devsetup/pkg/httputil"
	"github.com/matzehuels/devsetup/pkg/integrations"
)

func TestClient_LatestRelease(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/repos/helix-editor/helix/releases/latest":
			calls++
			json.NewEncoder(w).Encode(Release{
				TagName: "25.07.1",
				Assets: []Asset{
					{Name: "helix-25.07.1-x86_64-linux.tar.xz", URL: "https://example.invalid/helix.tar.xz"},
					{Name: "helix_25.7.1-1_amd64.deb", URL: "https://example.invalid/helix.deb"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")

	rel, err := c.LatestRelease(context.Background(), "helix-editor", "helix", false)
	if err != nil {
		t.Fatalf("LatestRelease() error: %v", err)
	}
	if rel.TagName != "25.07.1" {
		t.Errorf("TagName = %q", rel.TagName)
	}

	asset, err := rel.Asset("amd64.deb")
	if err != nil {
		t.Fatalf("Asset() error: %v", err)
	}
	if asset.URL != "https://example.invalid/helix.deb" {
		t.Errorf("asset URL = %q", asset.URL)
	}

	if _, err := c.LatestRelease(context.Background(), "helix-editor", "helix", false); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("second lookup should be served from cache, got %d requests", calls)
	}
}

func TestClient_LatestReleaseNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL, "")
	_, err := c.LatestRelease(context.Background(), "nobody", "nothing", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("LatestRelease() error = %v, want ErrNotFound", err)
	}
}

func TestRelease_AssetMissing(t *testing.T) {
	rel := &Release{TagName: "v1", Assets: []Asset{{Name: "tool.tar.gz"}}}
	if _, err := rel.Asset("amd64.deb"); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Asset() error = %v, want ErrNotFound", err)
	}
}

func TestHeaders(t *testing.T) {
	if h := headers(""); h["Authorization"] != "" {
		t.Errorf("unauthenticated headers = %v", h)
	}
	if h := headers("tok"); h["Authorization"] != "Bearer tok" {
		t.Errorf("Authorization = %q", h["Authorization"])
	}
}

func testClient(t *testing.T, serverURL, token string) *Client {
	t.Helper()
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	client := integrations.NewClient(cache, headers(token))
	return &Client{Client: client, baseURL: serverURL}
}
