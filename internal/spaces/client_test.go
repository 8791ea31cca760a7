package spaces

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token")
}

func TestSearchSortsByLikes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/api/spaces" {
			t.Errorf("path = %q, want /api/spaces", got)
		}
		if got := r.URL.Query().Get("search"); got != "stable diffusion" {
			t.Errorf("search = %q, want %q", got, "stable diffusion")
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "a/low", "sdk": "gradio", "likes": 3},
			{"id": "b/high", "sdk": "gradio", "likes": 900},
			{"id": "c/mid", "sdk": "static", "likes": 40}
		]`))
	})

	results, err := c.Search(context.Background(), "stable diffusion", 5)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].ID != "b/high" {
		t.Errorf("results[0].ID = %q, want b/high", results[0].ID)
	}
	if !results[0].IsGradio() {
		t.Error("b/high should be gradio")
	}
	if results[1].IsGradio() == false && results[1].ID != "c/mid" {
		t.Errorf("unexpected ordering: %+v", results)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "")
	if _, err := c.Search(context.Background(), "", 5); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestGetNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Get(context.Background(), "ghost/space")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetRateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Get(context.Background(), "owner/space")
	if err == nil {
		t.Fatal("expected rate limit error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantExists   bool
		wantIsGradio bool
	}{
		{"gradio space", http.StatusOK, `{"id": "o/s", "sdk": "gradio", "likes": 1}`, true, true},
		{"static space", http.StatusOK, `{"id": "o/s", "sdk": "static"}`, true, false},
		{"private space", http.StatusOK, `{"id": "o/s", "sdk": "gradio", "private": true}`, false, true},
		{"missing space", http.StatusNotFound, ``, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			exists, isGradio, err := c.Validate(context.Background(), "o/s")
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if exists != tt.wantExists || isGradio != tt.wantIsGradio {
				t.Errorf("Validate() = (%v, %v), want (%v, %v)",
					exists, isGradio, tt.wantExists, tt.wantIsGradio)
			}
		})
	}
}

func TestSpaceURL(t *testing.T) {
	s := Space{ID: "owner/name"}
	if got := s.URL(); got != "https://huggingface.co/spaces/owner/name" {
		t.Errorf("URL() = %q", got)
	}
}
