package tracking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptedNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/track/v2.2/register", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("17token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"data":{"accepted":[{"number":"LP123456789FR"}],"rejected":[]}}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-token")
	result, err := client.Validate(context.Background(), "LP123456789FR")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Message)
}

func TestValidateRejectedNumberCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"data":{"accepted":[],"rejected":[{"error":{"message":"carrier cannot be detected"}}]}}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-token")
	result, err := client.Validate(context.Background(), "bogus")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "carrier cannot be detected", result.Message)
}

func TestValidateRejectedNumberDefaultMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"data":{"accepted":[],"rejected":[{}]}}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-token")
	result, err := client.Validate(context.Background(), "bogus")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "numéro de suivi invalide", result.Message)
}

func TestFetchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/track/v2.2/gettrackinfo", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"data":{"accepted":[{"track_info":{"latest_status":{"status":"InTransit"},"latest_event":{"description":"Départ du centre de tri"}}}]}}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-token")
	status, err := client.FetchStatus(context.Background(), "LP123456789FR", 0)
	require.NoError(t, err)
	assert.Equal(t, "InTransit", status.Status)
	assert.Contains(t, string(status.LastEvent), "centre de tri")
}

func TestFetchStatusUnknownNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"data":{"accepted":[],"rejected":[{}]}}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-token")
	_, err := client.FetchStatus(context.Background(), "unknown", 0)
	assert.Error(t, err)
}
