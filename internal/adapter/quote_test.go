package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/config"
)

var fallbackQuote = QuoteRecord{
	Content: "The only way to do great work is to love what you do.",
	Author:  "Steve Jobs",
}

func newTestQuote(baseURL string) *Quote {
	cfg := config.UpstreamsConfig{QuoteBaseURL: baseURL}
	return NewQuote(cfg, &http.Client{}, zap.NewNop(), nil)
}

func TestRandomQuoteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tags"); got != "inspirational|motivational|wisdom|success" {
			t.Errorf("unexpected tags filter: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":"Stay hungry, stay foolish.","author":"Stewart Brand","tags":["wisdom"]}`))
	}))
	defer srv.Close()

	got := newTestQuote(srv.URL).RandomQuote(context.Background())

	want := QuoteRecord{Content: "Stay hungry, stay foolish.", Author: "Stewart Brand"}
	if got != want {
		t.Errorf("RandomQuote() = %+v, want %+v", got, want)
	}
}

func TestRandomQuoteFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{broken`))
			},
		},
		{
			name: "missing fields",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"length":42}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got := newTestQuote(srv.URL).RandomQuote(context.Background())
			if got != fallbackQuote {
				t.Errorf("RandomQuote() = %+v, want fallback %+v", got, fallbackQuote)
			}
		})
	}
}

func TestRandomQuoteUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	got := newTestQuote(srv.URL).RandomQuote(context.Background())
	if got != fallbackQuote {
		t.Errorf("RandomQuote() = %+v, want fallback %+v", got, fallbackQuote)
	}
}
