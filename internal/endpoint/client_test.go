package endpoint

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_PostsPromptAndReadsResponse(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chatbot", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"Mach 2"}`))
	}))
	defer srv.Close()

	answer, err := New(srv.URL+"/").Ask(context.Background(), "top speed?")
	require.NoError(t, err)
	assert.Equal(t, "Mach 2", answer)
	assert.Equal(t, map[string]string{"prompt": "top speed?"}, got)
}

func TestAsk_MissingOrEmptyFieldIsEmptyAnswer(t *testing.T) {
	for _, body := range []string{`{}`, `{"response":""}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		answer, err := New(srv.URL).Ask(context.Background(), "q")
		require.NoError(t, err, body)
		assert.Empty(t, answer, body)
		srv.Close()
	}
}

func TestAsk_StatusIsNotInspected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"response":"Please type a message for Typhoon."}`))
	}))
	defer srv.Close()

	answer, err := New(srv.URL).Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "Please type a message for Typhoon.", answer)
}

func TestAsk_NonJSONBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Ask(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestAsk_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Ask(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "post prompt: "), err.Error())

	var opErr *net.OpError
	assert.True(t, errors.As(err, &opErr), "cause is kept for errors.As")
}

func TestWithTimeout_DoesNotTouchSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Second}

	c := New("http://example.com", WithHTTPClient(shared), WithTimeout(5*time.Second))
	assert.Equal(t, time.Second, shared.Timeout)
	assert.Equal(t, 5*time.Second, c.client.Timeout)
	assert.NotSame(t, shared, c.client)

	c = New("http://example.com", WithTimeout(3*time.Second), WithHTTPClient(shared))
	assert.Equal(t, 3*time.Second, c.client.Timeout)
	assert.Equal(t, time.Second, shared.Timeout)

	c = New("http://example.com", WithHTTPClient(shared))
	assert.Same(t, shared, c.client)
}

func TestWithPath(t *testing.T) {
	c := New("http://example.com/", WithPath("api/chat"))
	assert.Equal(t, "http://example.com/api/chat", c.URL())

	c = New("http://example.com", WithPath(""))
	assert.Equal(t, "http://example.com/chatbot", c.URL())
}
