package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecheck/internal/config"
)

func newTestSentimentService(t *testing.T, handler http.HandlerFunc, apiKey string) (*SentimentService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewSentimentService(&config.SentimentConfig{
		APIKey:    apiKey,
		URL:       srv.URL,
		TimeoutMS: 2000,
	})
	return svc, srv
}

func TestClassifyEmptyTextSkipsRemoteCall(t *testing.T) {
	var calls int32
	svc, _ := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, "")

	assert.Equal(t, 3, svc.Classify(context.Background(), ""))
	assert.Equal(t, 3, svc.Classify(context.Background(), "   \t\n"))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClassifyNestedResponse(t *testing.T) {
	svc, _ := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`[[{"label":"4 stars","score":0.61},{"label":"5 stars","score":0.22}]]`))
	}, "")

	assert.Equal(t, 4, svc.Classify(context.Background(), "Pretty good week overall"))
}

func TestClassifyFlatResponse(t *testing.T) {
	svc, _ := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"2 stars","score":0.7}]`))
	}, "")

	assert.Equal(t, 2, svc.Classify(context.Background(), "Not a great week"))
}

func TestClassifyServerErrorFallsBackToNeutral(t *testing.T) {
	svc, _ := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}, "")

	assert.Equal(t, 3, svc.Classify(context.Background(), "anything"))
}

func TestClassifyMalformedResponseFallsBackToNeutral(t *testing.T) {
	svc, _ := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"unexpected shape"}`))
	}, "")

	assert.Equal(t, 3, svc.Classify(context.Background(), "anything"))
}

func TestClassifyAuthorizationHeader(t *testing.T) {
	var gotAuth string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[[{"label":"3 stars","score":0.5}]]`))
	}

	svc, _ := newTestSentimentService(t, handler, "hf_testkey")
	svc.Classify(context.Background(), "some text")
	assert.Equal(t, "Bearer hf_testkey", gotAuth)

	svc, _ = newTestSentimentService(t, handler, "")
	svc.Classify(context.Background(), "some text")
	assert.Empty(t, gotAuth)
}

func TestParseStarRating(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"nested", `[[{"label":"5 stars","score":0.9}]]`, 5, false},
		{"flat", `[{"label":"1 star","score":0.8}]`, 1, false},
		{"empty outer", `[]`, 0, true},
		{"empty inner", `[[]]`, 0, true},
		{"object", `{"label":"3 stars"}`, 0, true},
		{"no leading number", `[[{"label":"positive","score":0.9}]]`, 0, true},
		{"out of range", `[[{"label":"7 stars","score":0.9}]]`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stars, err := parseStarRating([]byte(tc.body))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, stars)
		})
	}
}
