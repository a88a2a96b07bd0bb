package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cheerioskun/reqninja/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return New(url, WithLogger(utils.NewWriterLogger(io.Discard)))
}

func TestSend(t *testing.T) {
	t.Run("posts the raw body with a JSON content type", func(t *testing.T) {
		var receivedMethod, receivedContentType, receivedBody string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedMethod = r.Method
			receivedContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			receivedBody = string(body)
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, `{"is_success": true, "user_id": "x", "email": "a@b.com", "roll_number": "2237889"}`)
		}))
		defer server.Close()

		raw := "{ \"data\" :  [\"M\", 1]\n}"
		resp, err := newTestClient(server.URL).Send(context.Background(), raw)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, receivedMethod)
		assert.Equal(t, "application/json", receivedContentType)
		assert.Equal(t, raw, receivedBody)
		assert.Equal(t, `"a@b.com"`, string(resp["email"]))
	})

	t.Run("server error message is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error": "bad request"}`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Send(context.Background(), `{"data":[]}`)
		require.Error(t, err)

		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
		assert.Equal(t, "bad request", reqErr.Error())
	})

	t.Run("non-2xx without error field falls back to generic message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, `<html>bad gateway</html>`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Send(context.Background(), `{"data":[]}`)
		require.Error(t, err)
		assert.Equal(t, MsgRequestFailed, err.Error())
	})

	t.Run("empty error field falls back to generic message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error": ""}`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Send(context.Background(), `{"data":[]}`)
		require.Error(t, err)
		assert.Equal(t, MsgRequestFailed, err.Error())
	})

	t.Run("2xx with non-object body is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `["not", "an", "object"]`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Send(context.Background(), `{"data":[]}`)
		require.Error(t, err)
		assert.Equal(t, MsgInvalidResponse, err.Error())
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := newTestClient(url).Send(context.Background(), `{"data":[]}`)
		require.Error(t, err)

		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, 0, reqErr.StatusCode)
		assert.Equal(t, MsgRequestFailed, reqErr.Message)
		assert.NotNil(t, reqErr.Unwrap())
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{}`)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient(server.URL).Send(ctx, `{"data":[]}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
