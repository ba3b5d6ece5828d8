package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPSource_FetchesAndKeepsOrder(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api_key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Incidents":[
			{"DateUpdated":"2024-06-01T10:00:00","Description":"Delay on Line 1"},
			{"DateUpdated":"2024-06-01T11:00:00","Description":"Delay on Line 2"}
		]}`))
	}))
	defer ts.Close()

	src := NewHTTPSource(ts.URL, "k-123", 5*time.Second)
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotKey != "k-123" {
		t.Fatalf("api_key header: got %q", gotKey)
	}
	if len(got) != 2 || got[0].Description != "Delay on Line 1" || got[1].Description != "Delay on Line 2" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if got[0].Timestamp != "2024-06-01T10:00:00" {
		t.Fatalf("timestamp not carried through: %q", got[0].Timestamp)
	}
}

func TestHTTPSource_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	src := NewHTTPSource(ts.URL, "", 0)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on non-2xx")
	}
}

func TestReaderSource_DecodesArray(t *testing.T) {
	in := `[{"timestamp":"2024-06-01T10:00:00","description":"Delay on Line 1"}]`
	got, err := ReaderSource{R: strings.NewReader(in)}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].Description != "Delay on Line 1" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestReaderSource_BadJSON(t *testing.T) {
	if _, err := (ReaderSource{R: strings.NewReader("{nope")}).Fetch(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
