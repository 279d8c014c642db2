package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/devsetup/pkg/observability"
)

type recordingHooks struct {
	observability.NoopHTTPHooks
	observability.NoopCacheHooks
	events []string
}

func (h *recordingHooks) OnResponse(_ context.Context, method, _, path string, status int, _ time.Duration) {
	h.events = append(h.events, method+" "+path+" "+http.StatusText(status))
}

func (h *recordingHooks) OnCacheHit(_ context.Context, key string)  { h.events = append(h.events, "hit "+key) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, key string) { h.events = append(h.events, "miss "+key) }
func (h *recordingHooks) OnCacheSet(_ context.Context, key string)  { h.events = append(h.events, "set "+key) }

func TestClientEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"v":1}`))
	}))
	defer server.Close()

	client := testClient(t, nil)
	client.SetHTTPClient(server.Client())

	for range 2 {
		var v map[string]int
		err := client.Cached(context.Background(), "k", false, &v, func() error {
			return client.Get(context.Background(), server.URL+"/x", &v)
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"miss k", "GET /x OK", "set k", "hit k"}
	if !slices.Equal(hooks.events, want) {
		t.Errorf("events = %q, want %q", hooks.events, want)
	}
}
