package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPClient_PostSendsJSONWithHeaders(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rows", r.URL.Path)
		assert.Equal(t, "v1", r.URL.Query().Get("version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "docs", r.Header.Get("X-Client"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithBaseURL(srv.URL), WithDefaultHeader("X-Client", "docs"), WithLogger(zap.NewNop()))
	resp, err := client.Post(context.Background(), "rows", map[string]string{"sheet": "items"},
		WithBearerToken("secret"), WithQueryParam("version", "v1"))

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "items", got["sheet"])
	assert.Equal(t, srv.URL, client.GetBaseURL())
}

func TestHTTPClient_EmptyBearerTokenIsSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	client := NewHTTPClient(WithLogger(zap.NewNop()))
	require.NoError(t, client.Send(context.Background(), srv.URL, nil, WithBearerToken("")))
}

func TestHTTPClient_ErrorStatusReturnsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithLogger(zap.NewNop()))
	err := client.Send(context.Background(), srv.URL, map[string]int{"a": 1})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Equal(t, http.MethodPost, httpErr.Method)
	assert.Contains(t, httpErr.Body, "quota exceeded")
}

func TestHTTPClient_SingleAttemptByDefault(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithLogger(zap.NewNop()))
	err := client.Send(context.Background(), srv.URL, nil)

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPClient_RetriesWhenConfigured(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "summary", body["sheet"], "body is replayed on every attempt")
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	retry := DefaultRetryConfig()
	retry.InitialInterval = time.Millisecond
	retry.MaxInterval = 5 * time.Millisecond
	client := NewHTTPClient(WithRetryConfig(retry), WithLogger(zap.NewNop()))

	err := client.Send(context.Background(), srv.URL, map[string]string{"sheet": "summary"})

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPClient_InvalidURLWithoutBase(t *testing.T) {
	client := NewHTTPClient(WithLogger(zap.NewNop()))

	_, err := client.Get(context.Background(), "not a url")

	assert.Error(t, err)
}

func TestHTTPClient_MiddlewareWrapsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yes", r.Header.Get("X-Wrapped"))
	}))
	defer srv.Close()

	wrap := func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r.Header.Set("X-Wrapped", "yes")
			return next.RoundTrip(r)
		})
	}
	client := NewHTTPClient(WithMiddleware(wrap), WithMiddleware(LoggingMiddleware(zap.NewNop())), WithLogger(zap.NewNop()))

	require.NoError(t, client.Send(context.Background(), srv.URL, nil))
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
