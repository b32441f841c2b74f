package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudnav/cloudnav/internal/domain"
)

func TestFetchEmptyEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/storage" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"links":[],"categories":[]}`))
	}))
	defer ts.Close()

	env, err := New(ts.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !env.Empty() {
		t.Errorf("Fetch() = %+v, want empty envelope", env)
	}
	if env.Settings != nil {
		t.Errorf("missing settings must stay nil (client defaults apply), got %+v", env.Settings)
	}
}

func TestReplaceSendsSecretHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(HeaderAuthPassword); got != "s3cret" {
			t.Errorf("%s = %q, want s3cret", HeaderAuthPassword, got)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	err := New(ts.URL).Replace(context.Background(), "s3cret", domain.Envelope{})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
}

func TestReplaceUnauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer ts.Close()

	err := New(ts.URL).Replace(context.Background(), "bad", domain.Envelope{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Replace() error = %v, want ErrUnauthorized", err)
	}
}

func TestQuickAdd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/link" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"link":{"id":"123","title":"T","url":"http://u","categoryId":"common","pinned":false,"createdAt":123},"categoryName":"Misc"}`))
	}))
	defer ts.Close()

	result, err := New(ts.URL).QuickAdd(context.Background(), "s3cret", QuickAddPayload{Title: "T", URL: "http://u"})
	if err != nil {
		t.Fatalf("QuickAdd() error = %v", err)
	}
	if result.Link.ID != "123" || result.CategoryName != "Misc" {
		t.Errorf("QuickAdd() = %+v, want link 123 in Misc", result)
	}
}

func TestQuickAddValidationError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing title or url"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).QuickAdd(context.Background(), "s3cret", QuickAddPayload{})
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("QuickAdd() error = %v, want validation failure", err)
	}
}
