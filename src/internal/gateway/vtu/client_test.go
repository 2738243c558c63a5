package vtu_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-service/src/internal/gateway/vtu"
	"wallet-service/src/pkg/log"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *vtu.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v := viper.New()
	v.Set("gateway.base_url", server.URL)
	v.Set("gateway.api_key", "test-key")
	v.Set("gateway.timeout", "500ms")

	return vtu.NewClient(v, log.Log{})
}

func submitRequest() *vtu.SubmitRequest {
	return &vtu.SubmitRequest{
		Type:        "airtime",
		Amount:      500,
		Reference:   "AIR-20260901-abc",
		Network:     "mtn",
		PhoneNumber: "08030000000",
	}
}

func TestSubmitSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/services/airtime", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"provider_reference":"PROV-001"}`))
	})

	result, err := client.Submit(context.Background(), submitRequest())
	require.NoError(t, err)
	assert.Equal(t, "PROV-001", result.ProviderReference)
}

func TestSubmitUpstreamRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid phone number"}`))
	})

	_, err := client.Submit(context.Background(), submitRequest())
	require.Error(t, err)
	assert.Equal(t, vtu.KindUpstreamRejected, vtu.KindOf(err))
	assert.Contains(t, err.Error(), "invalid phone number")
}

func TestSubmitRejectedOnSuccessFalse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"insufficient provider float"}`))
	})

	_, err := client.Submit(context.Background(), submitRequest())
	require.Error(t, err)
	assert.Equal(t, vtu.KindUpstreamRejected, vtu.KindOf(err))
}

func TestSubmitUpstreamUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Submit(context.Background(), submitRequest())
	require.Error(t, err)
	assert.Equal(t, vtu.KindUpstreamUnavailable, vtu.KindOf(err))
}

func TestSubmitTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	})

	_, err := client.Submit(context.Background(), submitRequest())
	require.Error(t, err)
	assert.Equal(t, vtu.KindTimeout, vtu.KindOf(err))
}

func TestSubmitNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	v := viper.New()
	v.Set("gateway.base_url", server.URL)
	v.Set("gateway.timeout", "500ms")
	client := vtu.NewClient(v, log.Log{})
	server.Close()

	_, err := client.Submit(context.Background(), submitRequest())
	require.Error(t, err)
	assert.Equal(t, vtu.KindNetwork, vtu.KindOf(err))
}
