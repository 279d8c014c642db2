package github

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/devsetup/pkg/integrations"
)

// Release is a published GitHub release.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// Asset is a file attached to a release.
type Asset struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"browser_download_url"`
}

// Asset returns the first asset whose name ends with suffix.
func (r *Release) Asset(suffix string) (Asset, error) {
	for _, a := range r.Assets {
		if strings.HasSuffix(a.Name, suffix) {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: no asset matching *%s in release %s", integrations.ErrNotFound, suffix, r.TagName)
}
