package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler collects completions on a channel, one per call.
type recordingHandler struct {
	done chan completion
}

type completion struct {
	token   uint64
	payload any
	code    int
	message string
	failed  bool
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{done: make(chan completion, 1)}
}

func (h *recordingHandler) Success(token uint64, payload any) {
	h.done <- completion{token: token, payload: payload}
}

func (h *recordingHandler) Failure(token uint64, code int, message string) {
	h.done <- completion{token: token, code: code, message: message, failed: true}
}

func (h *recordingHandler) wait(t *testing.T) completion {
	t.Helper()

	select {
	case c := <-h.done:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("no completion arrived")
		return completion{}
	}
}

func TestCallDeliversDecodedValue(t *testing.T) {
	var gotAgent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/xml")
		io.WriteString(w, `<?xml version="1.0"?>
			<methodResponse><params><param>
			<value><string>713</string></value>
			</param></params></methodResponse>`)
	}))
	defer srv.Close()

	handler := newRecordingHandler()
	client, err := New(srv.URL, "agent/1.0", 0, handler)
	require.NoError(t, err)

	client.Call(7, "demo.echo", []any{"1"})

	c := handler.wait(t)
	assert.Equal(t, uint64(7), c.token)
	assert.False(t, c.failed)
	assert.Equal(t, "713", c.payload)
	assert.Equal(t, "agent/1.0", gotAgent)
}

func TestCallDeliversServerFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		io.WriteString(w, `<?xml version="1.0"?>
			<methodResponse><fault><value><struct>
			<member><name>faultCode</name><value><int>403</int></value></member>
			<member><name>faultString</name><value><string>nope</string></value></member>
			</struct></value></fault></methodResponse>`)
	}))
	defer srv.Close()

	handler := newRecordingHandler()
	client, err := New(srv.URL, "agent/1.0", 0, handler)
	require.NoError(t, err)

	client.Call(8, "demo.echo", nil)

	c := handler.wait(t)
	assert.True(t, c.failed)
	assert.Equal(t, 403, c.code)
	assert.Contains(t, c.message, "nope")
}

func TestPostDeliversRawBody(t *testing.T) {
	var gotBody []byte
	var gotHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Get("X-HTTP-Method-Override")
		io.WriteString(w, "response body")
	}))
	defer srv.Close()

	handler := newRecordingHandler()
	client, err := New(srv.URL, "agent/1.0", 0, handler)
	require.NoError(t, err)

	client.Post(9, srv.URL, []byte("request body"), map[string]string{"X-HTTP-Method-Override": "PUT"})

	c := handler.wait(t)
	assert.False(t, c.failed)
	assert.Equal(t, []byte("response body"), c.payload)
	assert.Equal(t, []byte("request body"), gotBody)
	assert.Equal(t, "PUT", gotHeader)
}

func TestGetFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	handler := newRecordingHandler()
	client, err := New(srv.URL, "agent/1.0", 0, handler)
	require.NoError(t, err)

	client.Get(10, srv.URL+"/missing")

	c := handler.wait(t)
	assert.True(t, c.failed)
	assert.Equal(t, http.StatusNotFound, c.code)
}

func TestGetFailsOnConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	handler := newRecordingHandler()
	client, err := New(srv.URL, "agent/1.0", 0, handler)
	require.NoError(t, err)

	client.Get(11, srv.URL)

	c := handler.wait(t)
	assert.True(t, c.failed)
	assert.NotEmpty(t, c.message)
}
