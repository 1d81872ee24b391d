package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartel/loglyzer/pkg/stats"
)

func sampleStats() *stats.Stats {
	return &stats.Stats{
		TotalEntries: 2,
		ByLevel:      map[string]int{"ERROR": 2},
		TopErrors:    []stats.ErrorFrequency{{Message: "API timeout", Count: 2}},
	}
}

func TestSend_Success(t *testing.T) {
	var gotBody stats.Stats
	var gotAuth, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), sampleStats(), SendOptions{
		URL:   server.URL,
		Token: "s3cret",
	})

	assert.True(t, resp.Success())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, 2, gotBody.TotalEntries)
}

func TestSend_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), sampleStats(), SendOptions{URL: server.URL})

	assert.False(t, resp.Success())
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Error(t, resp.Error)
}

func TestSend_ConnectionRefused(t *testing.T) {
	client := NewClient()
	resp := client.Send(context.Background(), sampleStats(), SendOptions{
		URL: "http://127.0.0.1:1/hook",
	})

	assert.False(t, resp.Success())
	assert.Error(t, resp.Error)
}
