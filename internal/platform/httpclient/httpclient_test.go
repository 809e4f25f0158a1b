package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Method != http.MethodGet || r.Header.Get("X-Key") != "k" || r.Header.Get("Accept") != "application/json" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"u1"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(" bad token \n"))
		}
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", 0)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.GetJSON(context.Background(), "ok", map[string]string{"X-Key": "k"}, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.ID != "u1" {
		t.Fatalf("expected id u1, got %q", out.ID)
	}

	err = c.GetJSON(context.Background(), "/nope", nil, nil)
	var he *HTTPError
	if !errors.As(err, &he) || he.Body != "bad token" {
		t.Fatalf("expected HTTPError with trimmed body, got %v", err)
	}
	if StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("StatusOf = %d", StatusOf(err))
	}
	if StatusOf(errors.New("x")) != 0 {
		t.Fatalf("StatusOf must be 0 for non-http errors")
	}
}

func TestNewWithBaseURL(t *testing.T) {
	c, err := NewWithBaseURL("  ", 0)
	if err != nil {
		t.Fatalf("empty base url is allowed: %v", err)
	}
	if c.HTTP.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %v", c.HTTP.Timeout)
	}
	if err := c.GetJSON(context.Background(), "/x", nil, nil); err == nil {
		t.Fatalf("unconfigured client must fail")
	}
	if _, err := NewWithBaseURL("::not a url", 0); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}
